package metaxml

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sforcekit/fieldforge/internal/field"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestRenderField_Text(t *testing.T) {
	d := field.Descriptor{
		FullName: "Nickname__c",
		Label:    "Nickname",
		Type:     "Text",
		Length:   intPtr(255),
		Required: boolPtr(true),
	}

	out := string(RenderField(d))

	assert.True(t, strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"))
	assert.Contains(t, out, `<CustomField xmlns="http://soap.sforce.com/2006/04/metadata">`)
	assert.Contains(t, out, "<fullName>Nickname__c</fullName>")
	assert.Contains(t, out, "<label>Nickname</label>")
	assert.Contains(t, out, "<type>Text</type>")
	assert.Contains(t, out, "<length>255</length>")
	assert.Contains(t, out, "<required>true</required>")

	// Absent optional attributes produce no element at all.
	assert.NotContains(t, out, "<description>")
	assert.NotContains(t, out, "<precision>")
	assert.NotContains(t, out, "<valueSet>")
}

func TestRenderField_Picklist(t *testing.T) {
	d := field.Descriptor{
		FullName: "Status__c",
		Label:    "Status",
		Type:     "Picklist",
		ValueSet: []field.ValueSetEntry{
			{FullName: "New", Label: "New", Default: true},
			{FullName: "Done", Label: "Done"},
		},
	}

	out := string(RenderField(d))

	assert.Contains(t, out, "<valueSet>")
	assert.Contains(t, out, "<valueSetDefinition>")
	assert.Contains(t, out, "<sorted>false</sorted>")
	assert.Contains(t, out, "<fullName>New</fullName>")
	assert.Contains(t, out, "<default>true</default>")
	assert.Contains(t, out, "<fullName>Done</fullName>")
	assert.Contains(t, out, "<default>false</default>")

	// The New entry precedes the Done entry.
	assert.Less(t, strings.Index(out, "<fullName>New</fullName>"), strings.Index(out, "<fullName>Done</fullName>"))
}

func TestRenderField_EscapesSpecialCharacters(t *testing.T) {
	d := field.Descriptor{
		FullName:    "Note__c",
		Label:       "Notes & <remarks>",
		Type:        "Text",
		Description: strPtr(`He said "hi"`),
	}

	out := string(RenderField(d))

	assert.Contains(t, out, "<label>Notes &amp; &lt;remarks&gt;</label>")
	assert.Contains(t, out, "<description>He said &quot;hi&quot;</description>")
}

func TestRenderManifest(t *testing.T) {
	out := string(RenderManifest("Account", []string{"A__c", "B__c"}, "61.0"))

	assert.Contains(t, out, `<Package xmlns="http://soap.sforce.com/2006/04/metadata">`)
	assert.Contains(t, out, "<members>Account.A__c</members>")
	assert.Contains(t, out, "<members>Account.B__c</members>")
	assert.Contains(t, out, "<name>CustomField</name>")
	assert.Contains(t, out, "<version>61.0</version>")

	// Members come before the type name inside <types>.
	assert.Less(t, strings.Index(out, "<members>"), strings.Index(out, "<name>CustomField</name>"))
}

func TestWriteFieldElements_QualifiesFullName(t *testing.T) {
	d := field.Descriptor{FullName: "A__c", Label: "A", Type: "Text"}

	var buffer bytes.Buffer
	WriteFieldElements(&buffer, d, "Account.A__c", 0)
	out := buffer.String()

	require.Contains(t, out, "<fullName>Account.A__c</fullName>")
	assert.NotContains(t, out, "<fullName>A__c</fullName>")
}
