// =============================================================================
// fieldforge - Metadata XML Writer
// =============================================================================
//
// This module renders the Salesforce metadata XML documents: one CustomField
// document per field descriptor, and the package.xml manifest enumerating the
// staged members.
//
// XML STRUCTURE (field document):
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <CustomField xmlns="http://soap.sforce.com/2006/04/metadata">
//     <fullName>Status__c</fullName>
//     <label>Status</label>
//     <type>Picklist</type>
//     <valueSet>
//       <valueSetDefinition>
//         <sorted>false</sorted>
//         <value>
//           <fullName>New</fullName>
//           <default>true</default>
//           <label>New</label>
//         </value>
//       </valueSetDefinition>
//     </valueSet>
//   </CustomField>
//
// =============================================================================

package metaxml

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/sforcekit/fieldforge/internal/field"
)

// MetadataNamespace is the XML namespace of all Salesforce metadata documents.
const MetadataNamespace = "http://soap.sforce.com/2006/04/metadata"

// xmlDeclaration opens every rendered document.
const xmlDeclaration = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// =============================================================================
// ELEMENT TREE
// =============================================================================

// Element is a generic XML element: either a text leaf (Value set) or a
// container (Children set).
type Element struct {
	Name     string
	Value    string
	Children []Element
}

// text creates a leaf element with a text value.
func text(name, value string) Element {
	return Element{Name: name, Value: value}
}

// container creates an element holding child elements.
func container(name string, children ...Element) Element {
	return Element{Name: name, Children: children}
}

// =============================================================================
// FIELD DOCUMENT
// =============================================================================

// RenderField renders one CustomField metadata document.
func RenderField(d field.Descriptor) []byte {
	root := container("CustomField", fieldChildren(d)...)

	var buffer bytes.Buffer
	buffer.WriteString(xmlDeclaration)
	writeRoot(&buffer, root)
	return buffer.Bytes()
}

// fieldChildren lists the descriptor's attributes as elements, in the order
// the Metadata API documents them. Absent optional attributes produce no
// element at all.
func fieldChildren(d field.Descriptor) []Element {
	children := []Element{
		text("fullName", d.FullName),
	}

	if d.CaseSensitive != nil {
		children = append(children, text("caseSensitive", strconv.FormatBool(*d.CaseSensitive)))
	}
	if d.DefaultValue != nil {
		children = append(children, text("defaultValue", *d.DefaultValue))
	}
	if d.Description != nil {
		children = append(children, text("description", *d.Description))
	}
	if d.ExternalID != nil {
		children = append(children, text("externalId", strconv.FormatBool(*d.ExternalID)))
	}
	if d.Formula != nil {
		children = append(children, text("formula", *d.Formula))
	}
	if d.InlineHelpText != nil {
		children = append(children, text("inlineHelpText", *d.InlineHelpText))
	}

	children = append(children, text("label", d.Label))

	if d.Length != nil {
		children = append(children, text("length", strconv.Itoa(*d.Length)))
	}
	if d.Precision != nil {
		children = append(children, text("precision", strconv.Itoa(*d.Precision)))
	}
	if d.Required != nil {
		children = append(children, text("required", strconv.FormatBool(*d.Required)))
	}
	if d.Scale != nil {
		children = append(children, text("scale", strconv.Itoa(*d.Scale)))
	}

	children = append(children, text("type", d.Type))

	if d.Unique != nil {
		children = append(children, text("unique", strconv.FormatBool(*d.Unique)))
	}
	if len(d.ValueSet) > 0 {
		children = append(children, valueSetElement(d.ValueSet))
	}
	if d.VisibleLines != nil {
		children = append(children, text("visibleLines", strconv.Itoa(*d.VisibleLines)))
	}

	return children
}

// valueSetElement renders the picklist value set.
func valueSetElement(entries []field.ValueSetEntry) Element {
	values := make([]Element, 0, len(entries)+1)
	values = append(values, text("sorted", "false"))

	for _, entry := range entries {
		values = append(values, container("value",
			text("fullName", entry.FullName),
			text("default", strconv.FormatBool(entry.Default)),
			text("label", entry.Label),
		))
	}

	return container("valueSet", container("valueSetDefinition", values...))
}

// WriteFieldElements writes the descriptor's attribute elements into buffer
// at the given indent level, with fullName substituted. Used by the deploy
// client to embed a field inside a SOAP envelope whose default namespace is
// already the metadata namespace.
func WriteFieldElements(buffer *bytes.Buffer, d field.Descriptor, fullName string, level int) {
	d.FullName = fullName
	for _, child := range fieldChildren(d) {
		writeElement(buffer, child, level)
	}
}

// =============================================================================
// MANIFEST DOCUMENT
// =============================================================================

// RenderManifest renders the package.xml manifest for the staged fields.
// Members take the form <Object>.<Field>, grouped under the CustomField type,
// with the configured API version. The manifest is descriptive only; it never
// gates which fields are submitted.
func RenderManifest(objectName string, fieldNames []string, apiVersion string) []byte {
	members := make([]Element, 0, len(fieldNames)+1)
	for _, name := range fieldNames {
		members = append(members, text("members", fmt.Sprintf("%s.%s", objectName, name)))
	}
	members = append(members, text("name", "CustomField"))

	root := container("Package",
		container("types", members...),
		text("version", apiVersion),
	)

	var buffer bytes.Buffer
	buffer.WriteString(xmlDeclaration)
	writeRoot(&buffer, root)
	return buffer.Bytes()
}

// =============================================================================
// RENDERING
// =============================================================================

// indentUnit is the indentation used for nested elements.
const indentUnit = "    "

// writeRoot writes the root element with the metadata namespace attribute.
func writeRoot(buffer *bytes.Buffer, root Element) {
	buffer.WriteString("<")
	buffer.WriteString(root.Name)
	buffer.WriteString(fmt.Sprintf(" xmlns=\"%s\">\n", MetadataNamespace))

	for _, child := range root.Children {
		writeElement(buffer, child, 1)
	}

	buffer.WriteString("</")
	buffer.WriteString(root.Name)
	buffer.WriteString(">\n")
}

// writeElement writes an element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element Element, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indentUnit)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.Name)
	buffer.WriteString(">")

	if len(element.Children) == 0 {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			writeElement(buffer, child, level+1)
		}
		for i := 0; i < level; i++ {
			buffer.WriteString(indentUnit)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.Name)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}
