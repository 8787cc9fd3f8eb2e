package schema_test

import (
	"errors"
	"slices"
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check/schema"
)

var testSchema = schema.Schema{
	"thresholdInBytes": {Type: schema.TypeInteger, Default: 10000, Description: "Maximum size"},
	"ratio":            {Type: schema.TypeNumber, Default: 1},
	"ignoreMissing":    {Type: schema.TypeStringArray},
	"strict":           {Type: schema.TypeBoolean, Default: false},
	"locale":           {Type: schema.TypeString},
}

func TestValidate(t *testing.T) {
	tests := []struct {
		options map[string]any  // Options as decoded from config
		want    schema.Settings // Expected settings
		name    string          // Name of the test case
		wantErr bool            // Whether we want an error
	}{
		{
			name:    "defaults",
			options: nil,
			want:    schema.Settings{"thresholdInBytes": 10000, "ratio": 1.0, "strict": false},
		},
		{
			name: "coerced",
			options: map[string]any{
				"thresholdInBytes": int64(500),
				"ratio":            2,
				"ignoreMissing":    []any{"snippets/*"},
				"locale":           "fr",
			},
			want: schema.Settings{
				"thresholdInBytes": 500,
				"ratio":            2.0,
				"ignoreMissing":    []string{"snippets/*"},
				"strict":           false,
				"locale":           "fr",
			},
		},
		{
			name:    "integer from integral float",
			options: map[string]any{"thresholdInBytes": 12.0},
			want:    schema.Settings{"thresholdInBytes": 12, "ratio": 1.0, "strict": false},
		},
		{
			name:    "fractional integer",
			options: map[string]any{"thresholdInBytes": 1.5},
			wantErr: true,
		},
		{
			name:    "wrong type",
			options: map[string]any{"strict": "yes"},
			wantErr: true,
		},
		{
			name:    "mixed array",
			options: map[string]any{"ignoreMissing": []any{"a", 1}},
			wantErr: true,
		},
		{
			name:    "unknown",
			options: map[string]any{"nope": true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testSchema.Validate(tt.options)
			test.WantErr(t, err, tt.wantErr)

			if tt.wantErr {
				return
			}

			test.Equal(t, len(got), len(tt.want))

			for key, want := range tt.want {
				switch w := want.(type) {
				case []string:
					test.EqualFunc(t, got.GetStrings(key), w, slices.Equal)
				default:
					test.Equal(t, got[key], want, test.Context("setting %q", key))
				}
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	_, err := testSchema.Validate(map[string]any{"strict": 1, "ratio": "big", "extra": 3})
	test.Err(t, err)

	var problems []string

	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var schemaErr *schema.Error

		test.True(t, errors.As(e, &schemaErr))
		problems = append(problems, schemaErr.Key)
	}

	// Declared settings in key order, then unknown ones
	test.EqualFunc(t, problems, []string{"ratio", "strict", "extra"}, slices.Equal)
}

func TestError(t *testing.T) {
	tests := []struct {
		name string        // Name of the test case
		err  *schema.Error // The error under test
		want string        // Expected message
	}{
		{
			name: "mismatch",
			err:  &schema.Error{Key: "strict", Want: schema.TypeBoolean, Got: "yes"},
			want: `setting "strict": expected boolean, got string (yes)`,
		},
		{
			name: "unknown",
			err:  &schema.Error{Key: "nope", Unknown: true},
			want: `unknown setting "nope"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, tt.err.Error(), tt.want)
		})
	}
}

func TestSettingsGetters(t *testing.T) {
	settings, err := testSchema.Validate(map[string]any{"locale": "de", "ignoreMissing": []string{"a"}})
	test.Ok(t, err)

	test.Equal(t, settings.GetString("locale"), "de")
	test.Equal(t, settings.GetInt("thresholdInBytes"), 10000)
	test.Equal(t, settings.GetNumber("ratio"), 1.0)
	test.False(t, settings.GetBool("strict"))
	test.EqualFunc(t, settings.GetStrings("ignoreMissing"), []string{"a"}, slices.Equal)

	// Missing keys give zero values
	test.Equal(t, settings.GetString("missing"), "")
	test.Equal(t, settings.GetInt("locale"), 0)
}

func TestDescribe(t *testing.T) {
	s := schema.Schema{
		"b": {Type: schema.TypeBoolean, Default: true},
		"a": {Type: schema.TypeString, Description: "The a setting"},
	}

	test.Equal(t, s.Describe(), "a: string The a setting\nb: boolean (default true)\n")
}
