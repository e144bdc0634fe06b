package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sforcekit/fieldforge/internal/logging"
)

func strPtr(s string) *string { return &s }

func TestBuild_TypeDefaults(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		check func(t *testing.T, d Descriptor)
	}{
		{
			name:  "Text gets length 255",
			field: Field{FullName: "A__c", Label: "A", Type: TypeText},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.Length)
				assert.Equal(t, 255, *d.Length)
			},
		},
		{
			name:  "Text keeps explicit length",
			field: Field{FullName: "A__c", Label: "A", Type: TypeText, Length: strPtr("40")},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.Length)
				assert.Equal(t, 40, *d.Length)
			},
		},
		{
			name:  "Phone gets length 100",
			field: Field{FullName: "A__c", Label: "A", Type: TypePhone},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.Length)
				assert.Equal(t, 100, *d.Length)
			},
		},
		{
			name:  "Url gets length 100",
			field: Field{FullName: "A__c", Label: "A", Type: TypeURL},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.Length)
				assert.Equal(t, 100, *d.Length)
			},
		},
		{
			name:  "Email drops length even when given",
			field: Field{FullName: "A__c", Label: "A", Type: TypeEmail, Length: strPtr("80")},
			check: func(t *testing.T, d Descriptor) {
				assert.Nil(t, d.Length)
			},
		},
		{
			name:  "Number gets precision 18 scale 2",
			field: Field{FullName: "A__c", Label: "A", Type: TypeNumber},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.Precision)
				require.NotNil(t, d.Scale)
				assert.Equal(t, 18, *d.Precision)
				assert.Equal(t, 2, *d.Scale)
			},
		},
		{
			name:  "Currency keeps explicit precision, defaults scale",
			field: Field{FullName: "A__c", Label: "A", Type: TypeCurrency, Precision: strPtr("10")},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.Precision)
				require.NotNil(t, d.Scale)
				assert.Equal(t, 10, *d.Precision)
				assert.Equal(t, 2, *d.Scale)
			},
		},
		{
			name:  "Checkbox defaults to false",
			field: Field{FullName: "A__c", Label: "A", Type: TypeCheckbox},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.DefaultValue)
				assert.Equal(t, "false", *d.DefaultValue)
			},
		},
		{
			name:  "Checkbox keeps explicit default",
			field: Field{FullName: "A__c", Label: "A", Type: TypeCheckbox, DefaultValue: strPtr("true")},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.DefaultValue)
				assert.Equal(t, "true", *d.DefaultValue)
			},
		},
		{
			name:  "TextArea gets length 1000",
			field: Field{FullName: "A__c", Label: "A", Type: TypeTextArea},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.Length)
				assert.Equal(t, 1000, *d.Length)
			},
		},
		{
			name:  "LongTextArea gets length 32768 and visibleLines 10",
			field: Field{FullName: "A__c", Label: "A", Type: TypeLongTextArea},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.Length)
				require.NotNil(t, d.VisibleLines)
				assert.Equal(t, 32768, *d.Length)
				assert.Equal(t, 10, *d.VisibleLines)
			},
		},
		{
			name:  "Html gets length 32768 and visibleLines 10",
			field: Field{FullName: "A__c", Label: "A", Type: TypeHtml},
			check: func(t *testing.T, d Descriptor) {
				require.NotNil(t, d.Length)
				require.NotNil(t, d.VisibleLines)
				assert.Equal(t, 32768, *d.Length)
				assert.Equal(t, 10, *d.VisibleLines)
			},
		},
		{
			name:  "Unknown type passes through unchanged",
			field: Field{FullName: "A__c", Label: "A", Type: "Location"},
			check: func(t *testing.T, d Descriptor) {
				assert.Nil(t, d.Length)
				assert.Nil(t, d.Precision)
				assert.Nil(t, d.DefaultValue)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Build(tt.field)
			require.NoError(t, err)
			tt.check(t, d)
		})
	}
}

func TestBuild_PicklistValueSet(t *testing.T) {
	f := Field{
		FullName:       "Status__c",
		Label:          "Status",
		Type:           TypePicklist,
		PicklistValues: strPtr("New,In Progress,Completed"),
		DefaultValue:   strPtr("New"),
	}

	d, err := Build(f)
	require.NoError(t, err)

	require.Len(t, d.ValueSet, 3)
	assert.Equal(t, "New", d.ValueSet[0].FullName)
	assert.Equal(t, "In Progress", d.ValueSet[1].FullName)
	assert.Equal(t, "Completed", d.ValueSet[2].FullName)

	assert.True(t, d.ValueSet[0].Default, "only the New entry is the default")
	assert.False(t, d.ValueSet[1].Default)
	assert.False(t, d.ValueSet[2].Default)

	assert.Nil(t, d.DefaultValue, "generic defaultValue is superseded by the value set")
}

func TestBuild_PicklistTrimsAndDeduplicates(t *testing.T) {
	f := Field{
		FullName:       "Stage__c",
		Label:          "Stage",
		Type:           TypePicklist,
		PicklistValues: strPtr(" Open , Closed ,Open,, "),
	}

	d, err := Build(f)
	require.NoError(t, err)

	require.Len(t, d.ValueSet, 2)
	assert.Equal(t, "Open", d.ValueSet[0].FullName)
	assert.Equal(t, "Closed", d.ValueSet[1].FullName)
	assert.False(t, d.ValueSet[0].Default)
}

func TestApplyTypeDefaults_Idempotent(t *testing.T) {
	d, err := Build(Field{FullName: "A__c", Label: "A", Type: TypeText})
	require.NoError(t, err)

	before := *d.Length
	ApplyTypeDefaults(&d)
	assert.Equal(t, before, *d.Length, "re-applying defaults must not change a present length")

	num, err := Build(Field{FullName: "B__c", Label: "B", Type: TypeNumber, Precision: strPtr("5")})
	require.NoError(t, err)
	ApplyTypeDefaults(&num)
	assert.Equal(t, 5, *num.Precision)
	assert.Equal(t, 2, *num.Scale)
}

func TestBuild_NonNumericAttribute(t *testing.T) {
	_, err := Build(Field{FullName: "A__c", Label: "A", Type: TypeText, Length: strPtr("lots")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length")
}

func TestBuildAll_IsolatesFailures(t *testing.T) {
	fields := []Field{
		{FullName: "Good__c", Label: "Good", Type: TypeText, Row: 1},
		{FullName: "Bad__c", Label: "Bad", Type: TypeText, Length: strPtr("NaN"), Row: 2},
		{FullName: "Also__c", Label: "Also", Type: TypeText, Row: 3},
	}

	descriptors, failures, err := BuildAll(fields, logging.Nop{})
	require.NoError(t, err)

	require.Len(t, descriptors, 2)
	assert.Equal(t, "Good__c", descriptors[0].FullName)
	assert.Equal(t, "Also__c", descriptors[1].FullName)

	require.Len(t, failures, 1)
	assert.Equal(t, "Bad__c", failures[0].FullName)
	assert.Equal(t, 2, failures[0].Row)
}

func TestBuildAll_AllFailed(t *testing.T) {
	fields := []Field{
		{FullName: "Bad__c", Label: "Bad", Type: TypeText, Length: strPtr("NaN"), Row: 1},
	}

	_, failures, err := BuildAll(fields, logging.Nop{})
	assert.ErrorIs(t, err, ErrNoMetadataGenerated)
	assert.Len(t, failures, 1)
}
