// Package all registers every supported source via init().
package all

import (
	_ "lottokit/internal/sources/cwl"
	_ "lottokit/internal/sources/mirror"
	_ "lottokit/internal/sources/sporttery"
	_ "lottokit/internal/sources/w500"
	_ "lottokit/internal/sources/x500"
)
