package models

import "testing"

func TestCanShipmentDetailTransition(t *testing.T) {
	tests := []struct {
		from ShipmentDetailStatus
		to   ShipmentDetailStatus
		want bool
	}{
		{ShipmentDetailPending, ShipmentDetailReceived, true},
		{ShipmentDetailReceived, ShipmentDetailPutAway, true},

		// Atlama ve geri dönüş yok
		{ShipmentDetailPending, ShipmentDetailPutAway, false},
		{ShipmentDetailReceived, ShipmentDetailPending, false},
		{ShipmentDetailPutAway, ShipmentDetailReceived, false},
		{ShipmentDetailPutAway, ShipmentDetailPending, false},
		{ShipmentDetailPutAway, ShipmentDetailPutAway, false},
	}

	for _, tt := range tests {
		if got := CanShipmentDetailTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanShipmentDetailTransition(%q, %q) = %v, istenen %v", tt.from, tt.to, got, tt.want)
		}
	}
}
