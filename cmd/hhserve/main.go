// Command hhserve starts a highlighter.Registry bound to a sample document
// and exposes the observer hub's websocket endpoint, so a widget process
// can connect and watch stats change as queries are applied.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/hlight/htmlhighlighter/dom"
	"github.com/hlight/htmlhighlighter/highlighter"
	"github.com/hlight/htmlhighlighter/observer"
)

const sampleDocument = `<!DOCTYPE html>
<html>
<body>
<div id="article">
<p>Viber has now clarified that the hack only allowed access to two minor
systems, a customer support panel and a support administration system.</p>
<p>Viber also took the opportunity to respond to accusations of spying.</p>
</div>
</body>
</html>`

func main() {
	addr := flag.String("addr", ":8089", "address to serve the observer websocket on")
	path := flag.String("path", "/ws", "path the observer websocket is mounted at")
	flag.Parse()

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
		MaxHighlight:    10,
		UseQueryAsClass: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "construct registry: %v\n", err)
		os.Exit(1)
	}

	logger := log.Default()
	hub := observer.NewHub(logger)
	apply := observer.Watch(reg, hub)

	reg.Add("the", []interface{}{"the"}, true, nil)
	reg.Add("viber", []interface{}{"Viber"}, true, nil)
	apply()

	mux := http.NewServeMux()
	mux.Handle(*path, hub)
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		s := reg.Stats()
		fmt.Fprintf(w, "queries=%d total=%d highlight=%d\n", s.Queries, s.Total, s.Highlight)
	})

	logger.Printf("hhserve: observer websocket on %s%s, stats on %s/stats", *addr, *path, *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		os.Exit(1)
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
