package reconcile_test

import (
	"testing"

	"meeting-manager/feature/booking/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestClassifyID(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want reconcile.RecordID
	}{
		{"nil", nil, reconcile.RecordID{Kind: reconcile.IDNew}},
		{"json number", float64(7), reconcile.RecordID{Kind: reconcile.IDNumeric, Value: 7}},
		{"numeric string", "12", reconcile.RecordID{Kind: reconcile.IDNumeric, Value: 12}},
		{"padded numeric string", " 12 ", reconcile.RecordID{Kind: reconcile.IDNumeric, Value: 12}},
		{"empty string", "", reconcile.RecordID{Kind: reconcile.IDNew}},
		{"zero", "0", reconcile.RecordID{Kind: reconcile.IDNew}},
		{"negative", "-3", reconcile.RecordID{Kind: reconcile.IDNew}},
		{"negative number", float64(-3), reconcile.RecordID{Kind: reconcile.IDNew}},
		{"placeholder token", "room_1709", reconcile.RecordID{Kind: reconcile.IDPlaceholder}},
		{"arbitrary text", "draft", reconcile.RecordID{Kind: reconcile.IDPlaceholder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.ClassifyID(tt.raw))
		})
	}
}
