/*
Package clients provides a Go client for the object store HTTP API.

SiloClient maps each storage operation onto one request and turns error
responses into a *StatusError. A StatusError unwraps to the matching
sentinel from the interfaces package, so callers can test with errors.Is:

	client := clients.NewSiloClient("http://localhost:8080", 30*time.Second)

	created, err := client.Put(ctx, "/abcdef/g1", strings.NewReader("hello"), "text/plain", nil)
	if err != nil {
		return err
	}

	obj, err := client.Get(ctx, "/abcdef/g1")
	if errors.Is(err, interfaces.ErrNotFound) {
		// nothing stored
	}

	names, err := client.List(ctx, "/abcdef/")
*/
package clients
