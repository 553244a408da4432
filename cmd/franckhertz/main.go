// Command franckhertz reduces Franck–Hertz oscilloscope captures into mean
// curves, reports their peaks and troughs, and plots them.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/banshee-data/franckhertz/internal/config"
	"github.com/banshee-data/franckhertz/internal/fsutil"
	"github.com/banshee-data/franckhertz/internal/monitoring"
	"github.com/banshee-data/franckhertz/internal/version"
)

var (
	dirFlag     = flag.String("dir", "", "Experiment folder with one sub-folder per run (overlay mode)")
	runFlag     = flag.String("run", "", "Single run folder (prints extrema summary and LaTeX table)")
	configFile  = flag.String("config", "", "Path to JSON configuration file")
	outDir      = flag.String("out", "", "Output directory for charts (default from config, \"plots\")")
	openChart   = flag.Bool("open", false, "Open the HTML chart in the browser")
	xlsxFile    = flag.String("xlsx", "", "Write an .xlsx workbook with every reduced curve")
	dbFile      = flag.String("db", "", "Record results in this SQLite database")
	temperature = flag.String("temp", "", "Temperature for the table caption")
	tableNumber = flag.String("table-number", "", "Number for the table label")
	verbose     = flag.Bool("verbose", false, "Log per-file parse details")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		log.Printf("Unsupported platform: %s", runtime.GOOS)
		return
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	monitoring.EnableDebug(*verbose)

	cfg := config.DefaultConfig()
	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	o := newOptions(cfg)
	o.dir = *dirFlag
	o.run = *runFlag
	o.xlsx = *xlsxFile
	o.dbPath = *dbFile
	if *outDir != "" {
		o.outDir = *outDir
	}
	if *temperature != "" {
		o.report.Temperature = *temperature
	}
	if *tableNumber != "" {
		o.report.TableNumber = *tableNumber
	}

	if o.dir != "" && o.run != "" {
		log.Fatalf("-dir and -run are mutually exclusive")
	}
	if o.dir == "" && o.run == "" {
		dir, err := promptDirectory(os.Stdin, os.Stdout)
		if err != nil {
			log.Fatalf("Failed to read directory: %v", err)
		}
		o.dir = dir
	}

	chart, err := execute(o, fsutil.OSFileSystem{}, os.Stdout)
	if err != nil {
		log.Fatalf("Failed: %v", err)
	}
	log.Printf("Charts written to %s", o.outDir)

	if *openChart {
		abs, err := filepath.Abs(chart)
		if err != nil {
			log.Fatalf("Failed to resolve chart path: %v", err)
		}
		openBrowser("file://" + abs)
	}
}
