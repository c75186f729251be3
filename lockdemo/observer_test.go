package lockdemo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineObserver(t *testing.T) {
	var buf bytes.Buffer
	o := NewLineObserver(&buf)

	o.ObserveRead(0)
	o.ObserveWrite(1)
	o.ObserveRead(1)
	o.ObserveFinal(100)

	require.Equal(t, "Read value as 0\nIncremented value by 1 to 1\nRead value as 1\n100\n", buf.String())
}

func TestLineObserver_ReadWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewRunner(WithObserver(NewLineObserver(&buf))).RunReadWrite(ReadWriteConfig{Readers: 2, Reads: 3, Writes: 4})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2*3+4)

	var reads, writes int
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "Read value as "):
			reads++
		case strings.HasPrefix(line, "Incremented value by 1 to "):
			writes++
		default:
			t.Fatalf("unexpected line %q", line)
		}
	}
	require.Equal(t, 6, reads)
	require.Equal(t, 4, writes)
}
