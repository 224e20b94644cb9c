package retrieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		res     *Result
		wantErr bool
	}{
		{"nil result", nil, true},
		{"empty url", &Result{URL: ""}, true},
		{"relative url", &Result{URL: "/media/x.mp4"}, true},
		{"no scheme", &Result{URL: "cdn.example.com/x.mp4"}, true},
		{"ftp scheme", &Result{URL: "ftp://cdn.example.com/x.mp4"}, true},
		{"valid https", &Result{URL: "https://cdn.example.com/x.mp4"}, false},
		{"valid http", &Result{URL: "http://cdn.example.com/x.mp4"}, false},
		{"no-avatar placeholder", &Result{URL: "https://cdn.example.com/no-avatar.png"}, true},
		{"default profile placeholder", &Result{URL: "https://cdn.example.com/default_profile.jpg"}, true},
		{"anonymous placeholder", &Result{URL: "https://static.example.com/anonymous.png"}, true},
		{"1x1 pixel", &Result{URL: "https://t.example.com/1x1.gif"}, true},
		{"inline bytes", &Result{Data: []byte{1, 2, 3}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.res)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
