package contactio

import (
	"testing"

	"github.com/dialsheet/dialsheet/internal/testutil"
)

func TestDetectSchema(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		header []string
		want   Schema
	}{
		{"google", []string{"First Name", "Phone 1 - Value"}, SchemaGoogle},
		{"clean", []string{"Name", "Phone_E164", "Country"}, SchemaClean},
		{"simple", []string{"Name", "Phone"}, SchemaSimple},
		{"unknown", []string{"foo", "bar"}, SchemaUnknown},
		{"empty", nil, SchemaUnknown},
		// Google slots win over a stray Phone_E164 column, and Phone_E164
		// wins over Phone, so re-cleaning an augmented list stays stable.
		{"google beats clean", []string{"Phone 1 - Value", "Phone_E164"}, SchemaGoogle},
		{"clean beats simple", []string{"Name", "Phone", "Phone_E164"}, SchemaClean},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.Equal(t, tt.want, DetectSchema(tt.header))
		})
	}
}

func TestSchemaLabel(t *testing.T) {
	t.Parallel()
	testutil.Equal(t, "Google Contacts", SchemaGoogle.Label())
	testutil.Equal(t, "cleaned list", SchemaClean.Label())
	testutil.Equal(t, "simple list", SchemaSimple.Label())
	testutil.Equal(t, "unknown", SchemaUnknown.Label())
}
