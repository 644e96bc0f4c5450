package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  Names
	}{
		{
			name:  "kebab input",
			input: "user-profile",
			want:  Names{CamelName: "userProfile", KebabName: "user-profile", UpperFirstCamelName: "UserProfile"},
		},
		{
			name:  "camel input",
			input: "userProfile",
			want:  Names{CamelName: "userProfile", KebabName: "user-profile", UpperFirstCamelName: "UserProfile"},
		},
		{
			name:  "single word",
			input: "user",
			want:  Names{CamelName: "user", KebabName: "user", UpperFirstCamelName: "User"},
		},
		{
			name:  "dash before uppercase letter",
			input: "api-V2",
			want:  Names{CamelName: "apiV2", KebabName: "api-V2", UpperFirstCamelName: "ApiV2"},
		},
		{
			name:  "several humps",
			input: "myBigApp",
			want:  Names{CamelName: "myBigApp", KebabName: "my-big-app", UpperFirstCamelName: "MyBigApp"},
		},
		{
			name:  "empty",
			input: "",
			want:  Names{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, From(tc.input))
		})
	}
}

func TestLocals(t *testing.T) {
	locals := From("order-item").Locals()

	assert.Equal(t, map[string]string{
		"camelName":           "orderItem",
		"kebabName":           "order-item",
		"upperFirstCamelName": "OrderItem",
	}, locals)
}
