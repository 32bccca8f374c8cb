package modinfo

// InfoFileName is the metadata file every mod directory must carry.
const InfoFileName = "info.json"

// ArchiveExt is the extension of packaged mod archives.
const ArchiveExt = ".zip"

// Descriptor is the parsed info.json of a single mod plus the directory it
// was loaded from. Only Name and Version are required; the remaining fields
// mirror the optional info.json keys Factorio understands.
type Descriptor struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Title           string   `json:"title,omitempty"`
	Author          string   `json:"author,omitempty"`
	Description     string   `json:"description,omitempty"`
	FactorioVersion string   `json:"factorio_version,omitempty"`
	Dependencies    []string `json:"dependencies,omitempty"`

	// SourceDir is the directory info.json was read from. Not part of the
	// metadata file itself.
	SourceDir string `json:"-"`
}

// Token returns the "<name>_<version>" identifier. It is both the archive
// base filename and the single top-level folder inside the archive; Factorio
// refuses archives where the two disagree.
func (d *Descriptor) Token() string {
	return d.Name + "_" + d.Version
}

// ArchiveName returns the archive filename for this mod, e.g. "planets_1.2.0.zip".
func (d *Descriptor) ArchiveName() string {
	return d.Token() + ArchiveExt
}

// ScanReport is the outcome of discovering mods under a repository root.
type ScanReport struct {
	// Descriptors are the valid mods found, ordered by directory name.
	Descriptors []Descriptor
	// Malformed records directories that carry an info.json that could not
	// be parsed or validated. They are reported, never packaged.
	Malformed []*MalformedDescriptorError
}
