package idp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrms-project/hrms-portal/internal/domain"
)

func Test_Normalize(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  RawUser
		want domain.User
	}{
		{
			name: "full record",
			raw: RawUser{
				Id:    "u1",
				Email: "one@example.com",
				UserMetadata: map[string]any{
					"is_admin":   true,
					"first_name": "First",
					"last_name":  "Last",
				},
				CreatedAt:        &created,
				EmailConfirmedAt: &created,
			},
			want: domain.User{
				Identifier:     "u1",
				Email:          "one@example.com",
				IsAdmin:        true,
				Firstname:      "First",
				Lastname:       "Last",
				CreatedAt:      &created,
				EmailConfirmed: true,
			},
		},
		{
			name: "missing metadata falls back to zero values",
			raw:  RawUser{Id: "u2", Email: "two@example.com"},
			want: domain.User{Identifier: "u2", Email: "two@example.com"},
		},
		{
			name: "metadata with wrong types is ignored",
			raw: RawUser{
				Id:    "u3",
				Email: "three@example.com",
				UserMetadata: map[string]any{
					"is_admin":   "yes",
					"first_name": 42,
				},
			},
			want: domain.User{Identifier: "u3", Email: "three@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.raw.Normalize())
		})
	}
}

func Test_Normalize_Idempotent(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	raw := RawUser{
		Id:    "u1",
		Email: "one@example.com",
		UserMetadata: map[string]any{
			"is_admin":   true,
			"first_name": "First",
			"last_name":  "Last",
		},
		CreatedAt:        &created,
		EmailConfirmedAt: &created,
	}

	once := raw.Normalize()
	roundTrip := Denormalize(once)
	twice := roundTrip.Normalize()

	assert.Equal(t, once, twice)
}

func Test_NormalizeAll(t *testing.T) {
	raw := []RawUser{
		{Id: "u1", Email: "one@example.com"},
		{Id: "u2", Email: "two@example.com"},
	}

	users := NormalizeAll(raw)

	assert.Len(t, users, 2)
	assert.Equal(t, domain.UserIdentifier("u1"), users[0].Identifier)
	assert.Equal(t, domain.UserIdentifier("u2"), users[1].Identifier)
}
