package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/assetview/pkg/loader"
	"github.com/oakwood-commons/assetview/pkg/value"
)

// loadInput reads the file argument, or stdin when it is piped. With neither
// it returns errShowHelp.
func (o *rootOptions) loadInput(cmd *cobra.Command, args []string) (value.Value, error) {
	if len(args) == 1 && args[0] != "-" {
		path := args[0]
		o.run.Input.Path = path
		if o.asset == "" {
			o.run.Input.AssetName = assetNameFromPath(path)
		}
		o.log.V(1).Info("loading input", "path", path)
		v, err := loader.LoadFile(path, o.log)
		if err != nil {
			return value.Value{}, err
		}
		return v, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && f == os.Stdin && !stdinIsPiped() {
		return value.Value{}, errShowHelp
	}
	o.run.Input.FromStdin = true
	v, err := loader.LoadReader(in, o.log)
	if err != nil {
		return value.Value{}, fmt.Errorf("stdin: %w", err)
	}
	return v, nil
}

func assetNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
