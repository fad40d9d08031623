package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseCRS(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		want     string
		wantErr  bool
		wantCode errbuilder.ErrCode
	}{
		{name: "default", value: DefaultCRS, want: "EPSG:25833"},
		{name: "lower case authority", value: " epsg:4326 ", want: "EPSG:4326"},
		{name: "ogc", value: "OGC:CRS84", want: "OGC:CRS84"},
		{name: "empty", value: "", wantErr: true, wantCode: errbuilder.CodeInvalidArgument},
		{name: "code only", value: "25833", wantErr: true, wantCode: errbuilder.CodeInvalidArgument},
		{name: "proj string", value: "+proj=utm +zone=33", wantErr: true, wantCode: errbuilder.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crs, err := ParseCRS(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
					t.Fatalf("unexpected error code (-want +got):\n%s", diff)
				}
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, crs.String()); diff != "" {
				t.Fatalf("unexpected crs (-want +got):\n%s", diff)
			}
		})
	}
}
