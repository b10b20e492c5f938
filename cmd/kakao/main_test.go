package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakao/internal/chart"
	"kakao/internal/report"
)

func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func sampleData(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs("../../testdata/data_kakao.csv")
	require.NoError(t, err)
	return path
}

func TestAnalyze(t *testing.T) {
	data := sampleData(t)
	dir := t.TempDir()
	t.Chdir(dir)
	outDir := filepath.Join(dir, "hasil")

	out, err := execute(t, context.Background(), "analyze", "--data", data, "--out", outDir, "--top", "3")
	require.NoError(t, err, out)

	assert.Contains(t, out, "📊 Data berhasil dibaca: 20 records")
	assert.Contains(t, out, "🏛️  Ringkasan dibangun: 4 wilayah (2019-2023)")
	assert.Contains(t, out, "✅ ANALISIS KAKAO SELESAI!")

	for _, name := range append(chart.Names(), report.WorkbookFile, report.ReportFile) {
		file := name
		if chart.Exists(name) {
			file = chart.FileName(name)
		}
		info, err := os.Stat(filepath.Join(outDir, file))
		require.NoError(t, err, file)
		assert.Positive(t, info.Size(), file)
	}
}

func TestAnalyze_ConfigFileAndFlagPrecedence(t *testing.T) {
	data := sampleData(t)
	dir := t.TempDir()
	t.Chdir(dir)

	cfgPath := filepath.Join(dir, "kakao.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_path: "+data+"\noutput_dir: dari-config\n"), 0o600))

	_, err := execute(t, context.Background(), "analyze", "--config", cfgPath, "--out", "dari-flag")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "dari-flag", report.WorkbookFile))
	assert.NoDirExists(t, filepath.Join(dir, "dari-config"))
}

func TestAnalyze_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, context.Background(), "analyze", "--data", "tidak-ada.csv")
	assert.ErrorContains(t, err, "tidak-ada.csv")

	_, err = execute(t, context.Background(), "analyze", "--top", "0")
	assert.ErrorContains(t, err, "invalid top n")
}

func TestServe_StopsOnCancel(t *testing.T) {
	data := sampleData(t)
	t.Chdir(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := execute(t, ctx, "serve", "--data", data, "--addr", "127.0.0.1:0")
	require.NoError(t, err, out)
	assert.Contains(t, out, "🚀 Starting kakao dashboard")
	assert.Contains(t, out, "👋 Dashboard stopped")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, context.Background(), "version")
	require.NoError(t, err)
	assert.Equal(t, "kakao v"+version+" ("+commit+")\n", out)
}
