// Package example completes against a schema snapshot embedded in the binary.
package example

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlintel"
)

//go:embed schema.yaml
var schema []byte

var Completer = mustLoad()

func mustLoad() *sqlintel.Completer {
	provider, err := sqlintel.ReadSnapshotYAML(bytes.NewReader(schema))
	if err != nil {
		panic(err)
	}
	snapshot, err := sqlintel.LoadSnapshot(context.Background(), provider, logrus.StandardLogger())
	if err != nil {
		panic(err)
	}
	return sqlintel.NewCompleter(snapshot)
}
