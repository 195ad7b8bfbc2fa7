package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeJobURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{
			name:  "detail page URL passes through",
			input: "https://www.linkedin.com/jobs/view/3912345678/",
			want:  "https://www.linkedin.com/jobs/view/3912345678/",
		},
		{
			name:  "search URL rewritten to detail page",
			input: "https://www.linkedin.com/jobs/search/?currentJobId=3912345678&keywords=golang",
			want:  "https://www.linkedin.com/jobs/view/3912345678/",
		},
		{
			name:  "leading and trailing whitespace tolerated",
			input: "  https://www.linkedin.com/jobs/view/42/  ",
			want:  "https://www.linkedin.com/jobs/view/42/",
		},
		{
			name:    "search URL without job id is fatal",
			input:   "https://www.linkedin.com/jobs/search/?keywords=golang",
			wantErr: "currentJobId",
		},
		{
			name:    "non-linkedin host rejected",
			input:   "https://example.com/jobs/view/42/",
			wantErr: "not a LinkedIn URL",
		},
		{
			name:    "unrelated linkedin path rejected",
			input:   "https://www.linkedin.com/feed/",
			wantErr: "jobs/search or jobs/view",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeJobURL(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				var invalid *InvalidURLError
				assert.ErrorAs(t, err, &invalid)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://www.linkedin.com/jobs/view/42/"))
	assert.True(t, IsHTTPURL("http://example.com"))
	assert.True(t, IsHTTPURL("  https://example.com  "))
	assert.False(t, IsHTTPURL("/tmp/jd.pdf"))
	assert.False(t, IsHTTPURL("ftp://example.com"))
	assert.False(t, IsHTTPURL("https://"))
	assert.False(t, IsHTTPURL(""))
}
