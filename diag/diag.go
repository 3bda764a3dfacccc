// Package diag exports a registry's current state (global stats and each
// query set's id range, length and group) as an XML tree; the marker list
// is not included. It serves snapshot-style tests and
// callers that want a serialized view of highlighter state without
// reaching into its internals.
package diag

import (
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/hlight/htmlhighlighter/highlighter"
)

// Dump builds an etree document describing reg's current state:
//
//	<registry queries="N" total="N" highlight="N">
//	  <query name="..." enabled="true" id="0" length="3" idHighlight="0"/>
//	  ...
//	</registry>
func Dump(reg *highlighter.Registry) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	stats := reg.Stats()
	root := doc.CreateElement("registry")
	root.CreateAttr("queries", strconv.Itoa(stats.Queries))
	root.CreateAttr("total", strconv.Itoa(stats.Total))
	root.CreateAttr("highlight", strconv.Itoa(stats.Highlight))

	for _, q := range reg.QuerySets() {
		qEl := root.CreateElement("query")
		qEl.CreateAttr("name", q.Name)
		qEl.CreateAttr("enabled", strconv.FormatBool(q.Enabled))
		qEl.CreateAttr("id", strconv.Itoa(q.ID))
		qEl.CreateAttr("length", strconv.Itoa(q.Length))
		qEl.CreateAttr("idHighlight", strconv.Itoa(q.IDHighlight))
		if q.Reserve != nil {
			qEl.CreateAttr("reserve", strconv.Itoa(*q.Reserve))
		}
	}

	return doc
}

// WriteTo writes Dump(reg) to w, indented for readability.
func WriteTo(w io.Writer, reg *highlighter.Registry) error {
	doc := Dump(reg)
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
