package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeXML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertAMI_WritesTables(t *testing.T) {
	xmlPath := writeXML(t, "EN2001a.A.segments.xml",
		`<root><segment starttime="1.00" endtime="2.50"/><segment starttime="3.00" endtime="4.00"/></root>`)
	outDir := t.TempDir()
	segments := filepath.Join(outDir, "segments")
	utt2spk := filepath.Join(outDir, "utt2spk")
	rttm := filepath.Join(outDir, "rttm")

	out, _, err := executeCommand(t, "convert", "ami", xmlPath,
		"--meeting", "EN2001a", "--speaker", "A",
		"--segments", segments, "--utt2spk", utt2spk, "--rttm", rttm)
	require.NoError(t, err)
	assert.Contains(t, out, "converted 2 segments")

	segData, err := os.ReadFile(segments)
	require.NoError(t, err)
	assert.Equal(t,
		"EN2001a_A-00000100-00000250 EN2001a 1.00 2.50\n"+
			"EN2001a_A-00000300-00000400 EN2001a 3.00 4.00\n",
		string(segData))

	rttmData, err := os.ReadFile(rttm)
	require.NoError(t, err)
	assert.Contains(t, string(rttmData), "SPEAKER EN2001a 1 1.00 1.50 <NA> <NA> A <NA> <NA>")
}

func TestConvertICSI_StdoutWhenNoOutputs(t *testing.T) {
	xmlPath := writeXML(t, "Bmr021.xml",
		`<Trans><Turn startTime="0.500" endTime="2.000" speaker="me011"/></Trans>`)

	out, _, err := executeCommand(t, "convert", "icsi", xmlPath, "--recording", "Bmr021")
	require.NoError(t, err)
	assert.Equal(t, "Bmr021-me011-000000500-000002000 Bmr021 0.500 2.000\n", out)
}

func TestConvertICSI_NotATranscript(t *testing.T) {
	xmlPath := writeXML(t, "notes.xml", `<root><Turn startTime="1" endTime="2" speaker="x"/></root>`)

	_, _, err := executeCommand(t, "convert", "icsi", xmlPath, "--recording", "Bmr021")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvertAMI_MissingFile(t *testing.T) {
	_, _, err := executeCommand(t, "convert", "ami", filepath.Join(t.TempDir(), "nope.xml"),
		"--meeting", "EN2001a", "--speaker", "A")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
