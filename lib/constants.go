package lib

import (
	"log"
	"os"
	"path/filepath"

	"github.com/deso-protocol/reccak/reccak"
	"github.com/shibukawa/configdir"
)

const (
	// ConfigDirVendorName is the enclosing folder for user data.
	// It's required to created a ConfigDir.
	ConfigDirVendorName = "reccak"
	// ConfigDirAppName is the folder where we keep user data.
	ConfigDirAppName = "reverse"
	// PreimageDirName is the badger directory under the data dir.
	PreimageDirName = "preimages"
)

// DefaultCharset is the 81-symbol alphabet searched when none is configured.
const DefaultCharset = "qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM1234567890!@#%^-_=+([{<)]}>"

const (
	// DefaultPreimageCacheSize bounds the in-memory LRU in front of the store.
	DefaultPreimageCacheSize = 1024

	// DefaultStatsIntervalSeconds is how often the StatsManager reports.
	DefaultStatsIntervalSeconds = 5

	// hashCountFlushInterval is how many candidates a worker hashes before
	// publishing its count to the pool-wide counter.
	hashCountFlushInterval = 4096
)

// KnownDigest is a digest whose preimage is a string of CandidateSize symbols
// from DefaultCharset.
type KnownDigest struct {
	Digest        reccak.Digest
	CandidateSize int
}

// KnownDigests are the reference targets reversed by default.
var KnownDigests = []KnownDigest{
	{
		Digest:        reccak.Digest{0xCFEA, 0xCDDA, 0xA7B4, 0x9BC7, 0x435C, 0x2564, 0x10DF, 0x11ED},
		CandidateSize: 2,
	},
	{
		Digest:        reccak.Digest{0x46E1, 0x4669, 0x6C40, 0x8A28, 0xD1F6, 0xBBB1, 0x635D, 0xCAC0},
		CandidateSize: 3,
	},
	{
		Digest:        reccak.Digest{0xCCC0, 0x9636, 0x70A4, 0xC12F, 0x0745, 0x028B, 0x267F, 0x4AE5},
		CandidateSize: 4,
	},
}

// GetDataDir gets the user data directory where we store files
// in a cross-platform way.
func GetDataDir() string {
	configDirs := configdir.New(
		ConfigDirVendorName, ConfigDirAppName)
	dirString := configDirs.QueryFolders(configdir.Global)[0].Path
	if err := os.MkdirAll(dirString, os.ModePerm); err != nil {
		log.Fatalf("GetDataDir: Could not create data directories (%s): %v", dirString, err)
	}
	return filepath.Clean(dirString)
}
