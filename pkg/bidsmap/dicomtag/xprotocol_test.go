package dicomtag

import (
	"testing"

	"github.com/GoogleCloudPlatform/go-dicom-parser/dicom"

	"github.com/neurolab-io/bidsmap/pkg/bidsmap/series"
)

func TestScanXProtocolFirstMatchWins(t *testing.T) {
	path := writeFile(t, "dump.dcm", []byte("lRepetitions\t = \t120\nlRepetitions\t = \t999\n"))

	val, found, err := ScanXProtocol("lRepetitions", path)
	if err != nil {
		t.Fatal(err)
	}
	if !found || val != "120" {
		t.Errorf("got (%q, %v), want first match 120", val, found)
	}
}

func TestScanXProtocolBinaryPrefix(t *testing.T) {
	data := append([]byte{0x00, 0xff, 0xfe, '\n'}, []byte("tProtocolName\t = \t\"ep2d_bold\"\n")...)
	path := writeFile(t, "dump.dcm", data)

	val, found, err := ScanXProtocol("tProtocolName", path)
	if err != nil {
		t.Fatal(err)
	}
	if !found || val != `"ep2d_bold"` {
		t.Errorf("got (%q, %v)", val, found)
	}
}

func TestScanXProtocolMetacharactersLiteral(t *testing.T) {
	path := writeFile(t, "dump.dcm", []byte("sSliceArray.asSlice[0].dThickness\t = \t2.5\nsSliceArrayXasSliceX0XXdThickness\t = \twrong\n"))

	val, found, err := ScanXProtocol("sSliceArray.asSlice[0].dThickness", path)
	if err != nil {
		t.Fatal(err)
	}
	if !found || val != "2.5" {
		t.Errorf("metacharacters must match literally, got (%q, %v)", val, found)
	}
}

func TestScanXProtocolNoMatch(t *testing.T) {
	path := writeFile(t, "dump.dcm", []byte("EchoTime = 3.2\n"))

	// Separator must be exactly tab-space-equals-space-tab.
	_, found, err := ScanXProtocol("EchoTime", path)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("loose separator should not match")
	}
}

func TestScanXProtocolNoTrailingNewline(t *testing.T) {
	path := writeFile(t, "dump.dcm", []byte("EchoTime\t = \t3.2"))

	val, found, err := ScanXProtocol("EchoTime", path)
	if err != nil {
		t.Fatal(err)
	}
	if !found || val != "3.2" {
		t.Errorf("final unterminated line should still match, got (%q, %v)", val, found)
	}
}

func TestIsSiemensDump(t *testing.T) {
	with := writeFile(t, "siemens.dcm", []byte("xx### ASCCONV BEGIN ###yy"))
	without := writeFile(t, "other.dcm", []byte("plain bytes"))

	if ok, err := IsSiemensDump(with); err != nil || !ok {
		t.Errorf("IsSiemensDump(with marker) = (%v, %v)", ok, err)
	}
	if ok, err := IsSiemensDump(without); err != nil || ok {
		t.Errorf("IsSiemensDump(no marker) = (%v, %v)", ok, err)
	}
}

func TestNormalizeElement(t *testing.T) {
	cases := []struct {
		name string
		el   *dicom.DataElement
		want series.Value
	}{
		{
			"single string",
			&dicom.DataElement{VR: &dicom.VR{Name: "LO"}, ValueField: []string{"t1_mprage "}},
			series.Text("t1_mprage"),
		},
		{
			"integer string",
			&dicom.DataElement{VR: &dicom.VR{Name: "IS"}, ValueField: []string{"4"}},
			series.Int(4),
		},
		{
			"multi-valued string flattens",
			&dicom.DataElement{VR: &dicom.VR{Name: "CS"}, ValueField: []string{"ORIGINAL", "PRIMARY", "M"}},
			series.Text(`ORIGINAL\PRIMARY\M`),
		},
		{
			"single uint16",
			&dicom.DataElement{VR: &dicom.VR{Name: "US"}, ValueField: []uint16{256}},
			series.Int(256),
		},
		{
			"multi uint16 flattens",
			&dicom.DataElement{VR: &dicom.VR{Name: "US"}, ValueField: []uint16{256, 256}},
			series.Text(`256\256`),
		},
		{
			"float64",
			&dicom.DataElement{VR: &dicom.VR{Name: "FD"}, ValueField: []float64{2.5}},
			series.Text("2.5"),
		},
	}
	for _, tc := range cases {
		if got := normalizeElement(tc.el); !got.Equal(tc.want) {
			t.Errorf("%s: normalizeElement = %v, want %v", tc.name, got, tc.want)
		}
	}
}
