package format

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-datagen/pkg/testsupport"
)

func TestFormatsMatchGoldens(t *testing.T) {
	tests := []struct {
		format string
		golden string
	}{
		{format: FormatJSON, golden: "records.json.golden"},
		{format: FormatCSV, golden: "records.csv.golden"},
		{format: FormatSQL, golden: "records.sql.golden"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got := mustFormat(t, tt.format, DefaultOptions(), testsupport.Records())
			testsupport.AssertGolden(t, filepath.Join("testdata", tt.golden), []byte(got))
		})
	}
}
