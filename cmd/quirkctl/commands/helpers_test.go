package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const weatherSnapshot = `
ieee: "00:15:8d:00:02:b5:91:1e"
nwk: 0x7A3C
endpoints:
  - id: 1
    profile_id: 0x0104
    device_type: 0x5F01
    input_clusters: [0x0000, 0x0003, 0x0402, 0x0403, 0x0405]
    output_clusters: [0x0000, 0x0004]
`

const routerSnapshot = `
ieee: "00:12:4b:00:1c:dd:21:0a"
nwk: 0x0001
endpoints:
  - id: 242
    profile_id: 0xA1E0
    device_type: 0x0061
    output_clusters: [0x0021]
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}
