package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test boundaries
const (
	MaxIDLength = 64
)

type TestStruct struct {
	MinifigID string   `validate:"minifig_id"`
	Name      string   `validate:"required,max=100,excludesall=\x00\n\r\t"`
	IDs       []string `validate:"omitempty,dive,minifig_id"`
}

func TestValidator_MinifigIDValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name      string
		minifigID string
		wantErr   bool
	}{
		{"star wars id", "sw0036", false},
		{"ninjago variant", "njo123a", false},
		{"castle id", "cas123", false},
		{"with dot", "col01-1.2", false},

		// empty allowed (pair with 'required' where mandatory)
		{"empty id allowed", "", false},

		{"exactly max length", strings.Repeat("a", MaxIDLength), false},
		{"over max length", strings.Repeat("a", MaxIDLength+1), true},

		{"leading dash", "-sw0036", true},
		{"embedded space", "sw 0036", true},
		{"path traversal", "../sw0036", true},
		{"newline", "sw0036\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := TestStruct{
				MinifigID: tt.minifigID,
				Name:      "Clone Trooper",
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_NameValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid name", "Clone Trooper", false},
		{"one char", "a", false},
		{"exactly max length", strings.Repeat("a", 100), false},
		{"over max length", strings.Repeat("a", 101), true},

		{"empty name", "", true},
		{"with newline", "Clone\nTrooper", true},
		{"with tab", "Clone\tTrooper", true},
		{"with null byte", "Clone\x00Trooper", true},
		{"with carriage return", "Clone\rTrooper", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := TestStruct{
				MinifigID: "sw0036",
				Name:      tt.value,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_IDListValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	t.Run("valid list", func(t *testing.T) {
		input := TestStruct{
			MinifigID: "sw0036",
			Name:      "Clone Trooper",
			IDs:       []string{"sw0036", "cas123"},
		}
		assert.NoError(t, v.ValidateStruct(input))
	})

	t.Run("empty list allowed", func(t *testing.T) {
		input := TestStruct{MinifigID: "sw0036", Name: "Clone Trooper"}
		assert.NoError(t, v.ValidateStruct(input))
	})

	t.Run("one bad entry fails the list", func(t *testing.T) {
		input := TestStruct{
			MinifigID: "sw0036",
			Name:      "Clone Trooper",
			IDs:       []string{"sw0036", "../etc/passwd"},
		}
		assert.Error(t, v.ValidateStruct(input))
	})
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()
	v := GetValidator()

	t.Run("maps fields to friendly messages", func(t *testing.T) {
		input := TestStruct{
			MinifigID: "bad id",
			Name:      "",
		}

		err := v.ValidateStruct(input)
		require.Error(t, err)

		fields := FormatValidationError(err)
		assert.Equal(t, "Invalid minifigure ID", fields["minifigid"])
		assert.Equal(t, "This field is required", fields["name"])
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})
}
