// Package gommt provides a client for the ModernMT translation API.
//
// Gommt covers the full API surface: language detection, synchronous
// and asynchronous (batch) translation, translation memories and
// glossaries, context vectors, quality estimation and account lookup.
// Batch translations are delivered back through a signed webhook; the
// client verifies the signature against the API's public key before
// handing the result to the caller.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/gommt"
//	)
//
//	func main() {
//	    client := gommt.NewClient(os.Getenv("MMT_API_KEY"))
//
//	    t, err := client.Translate(context.Background(), "en", "es", "Hello World")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(t.Translation) // Hola Mundo
//	}
package gommt
