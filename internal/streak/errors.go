package streak

import "errors"

// ErrInsuranceUsed rejects a second insurance application within the same
// monthly grant cycle. Checked before any group is touched.
var ErrInsuranceUsed = errors.New("streak insurance already used this cycle")
