package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sforcekit/fieldforge/internal/field"
)

func TestStage_Layout(t *testing.T) {
	base := t.TempDir()
	stager := New(base, "61.0")

	length := 255
	descriptors := []field.Descriptor{
		{FullName: "A__c", Label: "A", Type: "Text", Length: &length},
		{FullName: "B__c", Label: "B", Type: "Checkbox"},
	}

	root, err := stager.Stage("Account", descriptors)
	require.NoError(t, err)
	assert.Contains(t, root, base, "staging root lives under the configured base dir")

	// One field-meta.xml per descriptor, keyed by the object name.
	fieldsDir := filepath.Join(root, "objects", "Account", "fields")
	for _, name := range []string{"A__c", "B__c"} {
		path := filepath.Join(fieldsDir, name+".field-meta.xml")
		data, err := os.ReadFile(path)
		require.NoError(t, err, "expected %s to exist", path)
		assert.Contains(t, string(data), "<fullName>"+name+"</fullName>")
	}

	// Plus the manifest at the staging root.
	manifest, err := os.ReadFile(filepath.Join(root, "package.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "<members>Account.A__c</members>")
	assert.Contains(t, string(manifest), "<members>Account.B__c</members>")
	assert.Contains(t, string(manifest), "<name>CustomField</name>")
	assert.Contains(t, string(manifest), "<version>61.0</version>")
}

func TestStage_DistinctRootsPerRun(t *testing.T) {
	base := t.TempDir()
	stager := New(base, "61.0")

	d := []field.Descriptor{{FullName: "A__c", Label: "A", Type: "Text"}}

	first, err := stager.Stage("Account", d)
	require.NoError(t, err)
	second, err := stager.Stage("Account", d)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStage_ObjectNameParameterized(t *testing.T) {
	stager := New(t.TempDir(), "61.0")

	d := []field.Descriptor{{FullName: "A__c", Label: "A", Type: "Text"}}

	root, err := stager.Stage("Shipment__c", d)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "objects", "Shipment__c", "fields", "A__c.field-meta.xml"))
	assert.NoError(t, err)
}
