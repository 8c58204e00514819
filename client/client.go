package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/challenai/hbaseops/thrift/hbase"
)

// http Header attached to HBase client
// for example, some cloud service provider HBase instances need some authrization headers.
type Header struct {
	Key, Value string
}

// RoundTripper adds the configured headers to every request.
type RoundTripper struct {
	Headers []Header
	Base    http.RoundTripper
}

// RoundTrip implements the http RoundTripper interface
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for _, header := range rt.Headers {
		req.Header.Add(header.Key, header.Value)
	}
	base := rt.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// Options locate a Thrift2 gateway.
type Options struct {
	Host    string
	Port    int
	Path    string
	Headers []Header
	Timeout time.Duration
}

// URL is the HTTP endpoint of the gateway.
func (o Options) URL() string {
	path := o.Path
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	return fmt.Sprintf("http://%s:%d%s", o.Host, o.Port, path)
}

// Conn is one open connection to the gateway. It must be closed by whoever
// opened it.
type Conn struct {
	*hbase.THBaseServiceClient
	trans thrift.TTransport
}

func (c *Conn) Close() error {
	return c.trans.Close()
}

// Dial opens a connection to the gateway described by opts.
func Dial(ctx context.Context, opts Options) (*Conn, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := http.Client{
		Transport: &RoundTripper{
			Headers: opts.Headers,
		},
		Timeout: timeout,
	}
	trans, err := thrift.NewTHttpClientWithOptions(opts.URL(), thrift.THttpClientOptions{Client: &httpClient})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := trans.Open(); err != nil {
		return nil, err
	}
	proto := thrift.NewTBinaryProtocol(trans, false, true)
	thriftClient := thrift.NewTStandardClient(proto, proto)
	return &Conn{
		THBaseServiceClient: hbase.NewTHBaseServiceClient(thriftClient),
		trans:               trans,
	}, nil
}
