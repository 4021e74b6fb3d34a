package system

import "github.com/spf13/afero"

// AppFs is the filesystem all file operations go through.
// Tests swap it for an afero.MemMapFs.
var AppFs afero.Fs = afero.NewOsFs()
