package hbaseops

import (
	"context"
	"sort"

	"github.com/challenai/hbaseops/client"
	c "github.com/challenai/hbaseops/codec"
	"github.com/challenai/hbaseops/config"
	"github.com/challenai/hbaseops/logger"
)

// ClientOptions maps the [hbase] config section onto client options.
func ClientOptions(conf config.HBase) client.Options {
	keys := make([]string, 0, len(conf.Headers))
	for k := range conf.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	headers := make([]client.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, client.Header{Key: k, Value: conf.Headers[k]})
	}
	return client.Options{
		Host:    conf.Host,
		Port:    conf.Port,
		Path:    conf.Path,
		Headers: headers,
		Timeout: conf.Timeout.Duration,
	}
}

// NewHBase create a new HBase DB talking to the configured Thrift2 gateway.
func NewHBase(conf config.HBase, log logger.Logger) *DB {
	return NewHBaseCodec(conf, log, &c.BytesCodec{})
}

// NewHBaseCodec is NewHBase with a custom value codec.
func NewHBaseCodec(conf config.HBase, log logger.Logger, codec c.Codec) *DB {
	opts := ClientOptions(conf)
	hb := NewDB(func(ctx context.Context) (Conn, error) {
		conn, err := client.Dial(ctx, opts)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}, codec, log)
	hb.addr = opts.URL()
	return hb
}
