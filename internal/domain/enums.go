package domain

// FileType represents the allowed file types for ingestion.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}

// BusinessType categorizes the utility provider behind a bill.
type BusinessType string

const (
	BusinessElectrical BusinessType = "electrical"
	BusinessWater      BusinessType = "water"
	BusinessCable      BusinessType = "cable"
	BusinessCleaning   BusinessType = "cleaning"
	BusinessPhone      BusinessType = "phone"
	BusinessTax        BusinessType = "tax"
	BusinessHeating    BusinessType = "heating"
	BusinessGarbage    BusinessType = "garbage"
)

// ValidBusinessTypes is the closed set of accepted business types.
var ValidBusinessTypes = map[BusinessType]bool{
	BusinessElectrical: true,
	BusinessWater:      true,
	BusinessCable:      true,
	BusinessCleaning:   true,
	BusinessPhone:      true,
	BusinessTax:        true,
	BusinessHeating:    true,
	BusinessGarbage:    true,
}

// IngestionStatus represents the terminal outcome of processing one document.
type IngestionStatus string

const (
	IngestionProcessed IngestionStatus = "processed"
	IngestionRejected  IngestionStatus = "rejected"
)

// Stage identifies the pipeline stage a rejection originated from.
type Stage string

const (
	StageDecode    Stage = "decode"
	StageTokenize  Stage = "tokenize"
	StageNormalize Stage = "normalize"
	StageLayout    Stage = "layout"
	StageResolve   Stage = "resolve"
	StagePersist   Stage = "persist"
)
