package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ruteri/silo/api"
	"github.com/ruteri/silo/api/clients"
	"github.com/ruteri/silo/cmd/flags"
	"github.com/urfave/cli/v2"
)

var flagTimeout = &cli.DurationFlag{
	Name:  "timeout",
	Value: 30 * time.Second,
	Usage: "request timeout",
}
var flagOutput = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "write the object to this file instead of stdout",
}
var flagFile = &cli.StringFlag{
	Name:    "file",
	Aliases: []string{"f"},
	Usage:   "read the object from this file instead of stdin",
}
var flagContentType = &cli.StringFlag{
	Name:  "content-type",
	Usage: "content type stored with the object",
}
var flagMeta = &cli.StringSliceFlag{
	Name:  "meta",
	Usage: "extra header stored with the object, as name=value (repeatable)",
}

func main() {
	app := &cli.App{
		Name:  "silo",
		Usage: "Read and write objects in a silo object store",
		Flags: []cli.Flag{
			flags.ServerAddrFlag,
			flagTimeout,
		},
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "fetch an object",
				ArgsUsage: "KEY",
				Flags:     []cli.Flag{flagOutput},
				Action: func(cCtx *cli.Context) error {
					key, err := singleArg(cCtx)
					if err != nil {
						return err
					}
					out := os.Stdout
					if path := cCtx.String(flagOutput.Name); path != "" {
						f, err := os.Create(path)
						if err != nil {
							return err
						}
						defer f.Close()
						out = f
					}
					return NewClient(cCtx, out).Get(cCtx.Context, key)
				},
			},
			{
				Name:      "put",
				Usage:     "store an object",
				ArgsUsage: "KEY",
				Flags:     []cli.Flag{flagFile, flagContentType, flagMeta},
				Action: func(cCtx *cli.Context) error {
					key, err := singleArg(cCtx)
					if err != nil {
						return err
					}
					meta, err := parseMeta(cCtx.StringSlice(flagMeta.Name))
					if err != nil {
						return err
					}
					var in io.Reader = os.Stdin
					if path := cCtx.String(flagFile.Name); path != "" {
						f, err := os.Open(path)
						if err != nil {
							return err
						}
						defer f.Close()
						in = f
					}
					return NewClient(cCtx, os.Stdout).Put(cCtx.Context, key, in, cCtx.String(flagContentType.Name), meta)
				},
			},
			{
				Name:      "delete",
				Usage:     "remove an object",
				ArgsUsage: "KEY",
				Action: func(cCtx *cli.Context) error {
					key, err := singleArg(cCtx)
					if err != nil {
						return err
					}
					return NewClient(cCtx, os.Stdout).Delete(cCtx.Context, key)
				},
			},
			{
				Name:      "list",
				Usage:     "list a collection",
				ArgsUsage: "KEY/",
				Action: func(cCtx *cli.Context) error {
					key, err := singleArg(cCtx)
					if err != nil {
						return err
					}
					return NewClient(cCtx, os.Stdout).List(cCtx.Context, key)
				},
			},
			{
				Name:      "rmdir",
				Usage:     "remove a collection recursively",
				ArgsUsage: "KEY/",
				Action: func(cCtx *cli.Context) error {
					key, err := singleArg(cCtx)
					if err != nil {
						return err
					}
					return NewClient(cCtx, os.Stdout).DeleteCollection(cCtx.Context, key)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// Provider is the subset of clients.SiloClient the commands use.
type Provider interface {
	Get(ctx context.Context, key string) (*clients.Object, error)
	Put(ctx context.Context, key string, body io.Reader, contentType string, meta map[string]string) (bool, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, collection string) ([]string, error)
	DeleteCollection(ctx context.Context, collection string) error
}

type Client struct {
	Provider Provider
	Out      io.Writer
}

func NewClient(cCtx *cli.Context, out io.Writer) *Client {
	return &Client{
		Provider: clients.NewSiloClient(cCtx.String(flags.ServerAddrFlag.Name), cCtx.Duration(flagTimeout.Name)),
		Out:      out,
	}
}

func (c *Client) Get(ctx context.Context, key string) error {
	obj, err := c.Provider.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	_, err = c.Out.Write(obj.Data)
	return err
}

func (c *Client) Put(ctx context.Context, key string, body io.Reader, contentType string, meta map[string]string) error {
	created, err := c.Provider.Put(ctx, key, body, contentType, meta)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	if created {
		fmt.Fprintln(c.Out, "created", key)
	} else {
		fmt.Fprintln(c.Out, "updated", key)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.Provider.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (c *Client) List(ctx context.Context, collection string) error {
	names, err := c.Provider.List(ctx, collection)
	if err != nil {
		return fmt.Errorf("list %s: %w", collection, err)
	}
	_, err = c.Out.Write(api.FormatListing(names))
	return err
}

func (c *Client) DeleteCollection(ctx context.Context, collection string) error {
	if err := c.Provider.DeleteCollection(ctx, collection); err != nil {
		return fmt.Errorf("rmdir %s: %w", collection, err)
	}
	return nil
}

func singleArg(cCtx *cli.Context) (string, error) {
	if cCtx.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one KEY argument, got %d", cCtx.NArg())
	}
	return cCtx.Args().First(), nil
}

func parseMeta(pairs []string) (map[string]string, error) {
	meta := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --meta %q, expected name=value", pair)
		}
		meta[strings.TrimSpace(name)] = value
	}
	return meta, nil
}
