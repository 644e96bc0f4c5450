package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppName(t *testing.T) {
	testCases := []struct {
		name    string
		wantErr bool
	}{
		{name: "my-app"},
		{name: "myApp"},
		{name: "app_2"},
		{name: "", wantErr: true},
		{name: "-app", wantErr: true},
		{name: "my app", wantErr: true},
		{name: "apps/my-app", wantErr: true},
		{name: `apps\my-app`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := AppName(tc.name)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestArtifactName(t *testing.T) {
	testCases := []struct {
		name    string
		wantErr bool
	}{
		{name: "user"},
		{name: "admin/user-profile"},
		{name: "v1/admin/User"},
		{name: "", wantErr: true},
		{name: "/user", wantErr: true},
		{name: "admin/", wantErr: true},
		{name: "admin//user", wantErr: true},
		{name: "../user", wantErr: true},
		{name: "admin/-user", wantErr: true},
		{name: "user$", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ArtifactName(tc.name)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
