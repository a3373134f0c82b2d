package dicomtag

// keywordTags maps DICOM keywords to their (group,element) tags. The table
// covers the attributes heuristic templates commonly match on; it makes no
// attempt at full dictionary coverage. Fields outside the table fall through
// to the x-protocol scan.
var keywordTags = map[string]uint32{
	"ImageType":                     0x0008_0008,
	"Modality":                      0x0008_0060,
	"Manufacturer":                  0x0008_0070,
	"StudyDescription":              0x0008_1030,
	"SeriesDescription":             0x0008_103E,
	"ManufacturerModelName":         0x0008_1090,
	"PatientID":                     0x0010_0020,
	"ScanningSequence":              0x0018_0020,
	"SequenceVariant":               0x0018_0021,
	"ScanOptions":                   0x0018_0022,
	"MRAcquisitionType":             0x0018_0023,
	"SequenceName":                  0x0018_0024,
	"SliceThickness":                0x0018_0050,
	"RepetitionTime":                0x0018_0080,
	"EchoTime":                      0x0018_0081,
	"InversionTime":                 0x0018_0082,
	"NumberOfAverages":              0x0018_0083,
	"ImagingFrequency":              0x0018_0084,
	"EchoNumbers":                   0x0018_0086,
	"MagneticFieldStrength":         0x0018_0087,
	"NumberOfPhaseEncodingSteps":    0x0018_0089,
	"EchoTrainLength":               0x0018_0091,
	"PercentSampling":               0x0018_0093,
	"PixelBandwidth":                0x0018_0095,
	"ProtocolName":                  0x0018_1030,
	"FlipAngle":                     0x0018_1314,
	"InPlanePhaseEncodingDirection": 0x0018_1312,
	"StudyInstanceUID":              0x0020_000D,
	"SeriesInstanceUID":             0x0020_000E,
	"SeriesNumber":                  0x0020_0011,
	"AcquisitionNumber":             0x0020_0012,
	"InstanceNumber":                0x0020_0013,
	"Rows":                          0x0028_0010,
	"Columns":                       0x0028_0011,
}

// TagForKeyword returns the data element tag for a DICOM keyword, if the
// keyword is in the supported table.
func TagForKeyword(keyword string) (uint32, bool) {
	tag, ok := keywordTags[keyword]
	return tag, ok
}
