package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStatusForExpiry(t *testing.T) {
	today := date(2026, 8, 30)

	tests := []struct {
		name     string
		expiry   time.Time
		nearDays int
		want     InventoryStatus
	}{
		{"dün geçmiş", date(2026, 8, 29), 7, InventoryExpired},
		{"çok eski", date(2025, 1, 1), 7, InventoryExpired},
		{"bugün son gün", date(2026, 8, 30), 7, InventoryNearlyExpiring},
		{"pencere içinde", date(2026, 9, 3), 7, InventoryNearlyExpiring},
		{"pencere sınırında", date(2026, 9, 6), 7, InventoryNearlyExpiring},
		{"pencere dışında", date(2026, 9, 7), 7, InventoryAvailable},
		{"uzak tarih", date(2027, 1, 1), 7, InventoryAvailable},
		{"farklı pencere", date(2026, 9, 7), 14, InventoryNearlyExpiring},
		{"saat kısmı yok sayılır", time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC), 7, InventoryExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusForExpiry(tt.expiry, today, tt.nearDays)
			if got != tt.want {
				t.Errorf("StatusForExpiry(%v) = %q, istenen %q", tt.expiry, got, tt.want)
			}
		})
	}
}

func TestStatusForExpiry_Idempotent(t *testing.T) {
	today := date(2026, 8, 30)
	expiries := []time.Time{
		date(2026, 8, 1),
		date(2026, 8, 30),
		date(2026, 9, 2),
		date(2026, 12, 1),
	}

	// Aynı girdiyle art arda hesaplama aynı sonucu vermeli
	for _, exp := range expiries {
		first := StatusForExpiry(exp, today, 7)
		second := StatusForExpiry(exp, today, 7)
		if first != second {
			t.Errorf("expiry %v: ilk hesap %q, ikinci hesap %q", exp, first, second)
		}
	}
}
