// Command hhdemo parses a sample HTML document, adds a handful of named
// query sets, applies them, and prints the resulting stats and one line
// per query set (length and id range) — an end-to-end smoke test for the
// highlighter engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hlight/htmlhighlighter/dom"
	"github.com/hlight/htmlhighlighter/highlighter"
)

const sampleDocument = `<!DOCTYPE html>
<html>
<body>
<div id="article">
<p>Viber has now clarified that the hack only allowed access to two minor
systems, a customer support panel and a support administration system.</p>
<p>According to the company's official response, "no sensitive user data
was exposed and Viber's databases were not 'hacked'."</p>
<p>Viber also took the opportunity to respond to accusations of spying:
the company said it does not eavesdrop on its users, and the allegation
stemmed from a misunderstanding of how the app's contact sync works.</p>
</div>
</body>
</html>`

func main() {
	jsonOutput := flag.Bool("json", false, "unused placeholder for future machine-readable output")
	flag.Parse()
	_ = *jsonOutput

	doc, err := dom.ParseHTML(sampleDocument)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse sample document: %v\n", err)
		os.Exit(1)
	}

	article := findByID(doc.DocumentElement().AsNode(), "article")
	if article == nil {
		fmt.Fprintln(os.Stderr, "sample document has no #article container")
		os.Exit(1)
	}

	reg, err := highlighter.New(highlighter.Options{
		Container:       article,
		MaxHighlight:    5,
		UseQueryAsClass: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "construct registry: %v\n", err)
		os.Exit(1)
	}

	reg.Add("the", []interface{}{"the"}, true, nil)
	reg.Add("viber", []interface{}{"Viber"}, true, nil)
	reg.Add("a", []interface{}{"a"}, true, nil)
	reg.Apply()

	stats := reg.Stats()
	fmt.Printf("queries=%d total=%d highlight=%d\n", stats.Queries, stats.Total, stats.Highlight)

	for _, name := range []string{"the", "viber", "a"} {
		sets := reg.QuerySets()
		q, ok := sets[name]
		if !ok {
			continue
		}
		fmt.Printf("  %-8s length=%-4d id=[%d,%d)\n", q.Name, q.Length, q.ID, q.ID+q.Length)
	}
}

func findByID(root *dom.Node, id string) *dom.Node {
	for n := root; n != nil; n = n.NextInDocumentOrder(root) {
		if n.NodeType() == dom.ElementNode && (*dom.Element)(n).Id() == id {
			return n
		}
	}
	return nil
}
