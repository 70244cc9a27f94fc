package diag

import "fmt"

// Code is a compact numeric identifier of a failure.
type Code uint16

const (
	// UnknownCode is used when nothing more specific applies.
	UnknownCode Code = 0

	// Parse errors
	ParseInfo               Code = 1000
	ParseUnterminatedAction Code = 1001
	ParseUnexpectedBrace    Code = 1002
	ParseHeaderLikeProduct  Code = 1003

	// Config errors
	ConfigInfo         Code = 2000
	ConfigInvalidTOML  Code = 2001
	ConfigInvalidValue Code = 2002
	ConfigInvalidType  Code = 2003
	ConfigReadFailed   Code = 2004
	ConfigExists       Code = 2005

	// IO errors
	IOInfo           Code = 3000
	IOLoadFileError  Code = 3001
	IOWriteFileError Code = 3002
	IONoSourceFiles  Code = 3003
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	ParseInfo:               "Parse information",
	ParseUnterminatedAction: "Unterminated action block",
	ParseUnexpectedBrace:    "Unexpected closing brace",
	ParseHeaderLikeProduct:  "Production reads as a rule header",
	ConfigInfo:              "Config information",
	ConfigInvalidTOML:       "Invalid TOML in config file",
	ConfigInvalidValue:      "Invalid config value",
	ConfigInvalidType:       "Config value has wrong type",
	ConfigReadFailed:        "Config file cannot be read",
	ConfigExists:            "Config file already exists",
	IOInfo:                  "IO information",
	IOLoadFileError:         "Failed to load file",
	IOWriteFileError:        "Failed to write file",
	IONoSourceFiles:         "No grammar files found",
}

// ID returns the stable short identifier, e.g. "PAR1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PAR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the human readable description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
