package dicomtag

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"regexp"
)

// siemensMarker starts the MrProt text dump Siemens embeds in every DICOM
// file it writes.
var siemensMarker = []byte("ASCCONV BEGIN")

// IsSiemensDump reports whether the file carries the Siemens protocol dump.
// The marker check is not foolproof but is very unlikely to miss.
func IsSiemensDump(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return bytes.Contains(data, siemensMarker), nil
}

// ScanXProtocol scans the file's raw bytes line by line for a protocol dump
// entry of the form "<field>\t = \t<value>" and returns the first value
// found. The second return is false when no line matches. The field name is
// regex-escaped before matching, so names containing metacharacters match
// literally.
func ScanXProtocol(field, path string) (string, bool, error) {
	re, err := regexp.Compile(`^` + regexp.QuoteMeta(field) + "\t = \t(.*)$")
	if err != nil {
		return "", false, err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	// The dump sits inside a binary file, so "lines" between newline bytes
	// can be arbitrarily long. ReadBytes has no token size limit.
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		line = bytes.TrimSuffix(line, []byte("\n"))
		if m := re.FindSubmatch(line); m != nil {
			return string(m[1]), true, nil
		}
		if err == io.EOF {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
	}
}
