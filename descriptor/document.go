package descriptor

import "encoding/xml"

// Fixed values required by the host format.
const (
	Version         = "1.0.0"
	Date            = "23/12/21"
	License         = "Free to use, also for commercial games."
	ConfigName      = "Default"
	ExtensionMask   = uint64(105553895358702)
	FileMask        = uint64(9223372036854775807)
	OrigNamePrefix  = `extensions\`
	FileKindDynLib  = 1
	FunctionKind    = 11
	UncompressedOff = 0
)

// Document is the root <extension> element.
type Document struct {
	XMLName                 xml.Name      `xml:"extension"`
	Name                    string        `xml:"name"`
	Version                 string        `xml:"version"`
	PackageID               string        `xml:"packageID"`
	ProductID               string        `xml:"ProductID"`
	Date                    string        `xml:"date"`
	License                 string        `xml:"license"`
	Description             string        `xml:"description"`
	HelpFile                string        `xml:"helpfile"`
	InstallDir              string        `xml:"installdir"`
	ClassName               string        `xml:"classname"`
	AndroidClassName        string        `xml:"androidclassname"`
	SourceDir               string        `xml:"sourcedir"`
	AndroidSourceDir        string        `xml:"androidsourcedir"`
	MacSourceDir            string        `xml:"macsourcedir"`
	MacLinkerFlags          string        `xml:"maclinkerflags"`
	MacCompilerFlags        string        `xml:"maccompilerflags"`
	AndroidInject           string        `xml:"androidinject"`
	AndroidManifestInject   string        `xml:"androidmanifestinject"`
	IOSPlistInject          string        `xml:"iosplistinject"`
	AndroidActivityInject   string        `xml:"androidactivityinject"`
	GradleInject            string        `xml:"gradleinject"`
	IOSSystemFrameworks     Empty         `xml:"iosSystemFrameworks"`
	IOSThirdPartyFrameworks Empty         `xml:"iosThirdPartyFrameworks"`
	ConfigOptions           ConfigOptions `xml:"ConfigOptions"`
	AndroidPermissions      Empty         `xml:"androidPermissions"`
	IncludedResources       Empty         `xml:"IncludedResources"`
	Files                   Files         `xml:"files"`
}

// Empty renders as an element with no content.
type Empty struct{}

type ConfigOptions struct {
	Config Config `xml:"Config"`
}

type Config struct {
	Name       string `xml:"name,attr"`
	CopyToMask uint64 `xml:"CopyToMask"`
}

type Files struct {
	File File `xml:"file"`
}

// File describes the compiled artifact and the functions it exports.
type File struct {
	FileName      string        `xml:"filename"`
	OrigName      string        `xml:"origname"`
	Init          string        `xml:"init"`
	Final         string        `xml:"final"`
	Kind          int           `xml:"kind"`
	Uncompress    int           `xml:"uncompress"`
	ConfigOptions ConfigOptions `xml:"ConfigOptions"`
	ProxyFiles    Empty         `xml:"ProxyFiles"`
	Functions     Functions     `xml:"functions"`
	Constants     Empty         `xml:"constants"`
}

type Functions struct {
	Items []Function `xml:"function"`
}

// Function is one callable entry in the host's function table.
type Function struct {
	Name         string `xml:"name"`
	ExternalName string `xml:"externalName"`
	Kind         int    `xml:"kind"`
	Help         string `xml:"help"`
	ReturnType   int    `xml:"returnType"`
	ArgCount     int    `xml:"argCount"`
	Args         Args   `xml:"args"`
}

type Args struct {
	Codes []int `xml:"arg"`
}
