package utils

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
)

const LOG_FLAGS = log.LstdFlags | log.Lshortfile | log.Lmicroseconds

// ConfigureLogger keeps output on stderr, which Lambda forwards to CloudWatch.
func ConfigureLogger() {
	log.SetFlags(LOG_FLAGS)
}

// SetLogger redirects the standard logger to <logDir>/<fileName>.txt.
func SetLogger(logDir string, fileName string) error {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return err
	}
	file, err := openLogFile(filepath.Join(logDir, fileName+".txt"))
	if err != nil {
		return err
	}
	log.SetOutput(file)
	log.SetFlags(LOG_FLAGS)

	log.Println("log file created")
	return nil
}

func openLogFile(path string) (*os.File, error) {
	logFile, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return logFile, nil
}

func ExportToCsv(filePath string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	for _, value := range records {
		if err = writer.Write(value); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
