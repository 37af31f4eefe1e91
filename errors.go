package fcap

import "golang.org/x/xerrors"

// ErrAborted is returned by Poll and SendRequest when a middleware or the
// user's own handler returns middleware.Abort. It corresponds to the
// reference implementation's generic -FCAP_EINVAL class of dispatch error;
// the underlying middleware stage is not distinguishable from outside the
// dispatcher, matching §4.5 ("surfaced as an EINVAL-class error").
var ErrAborted = xerrors.New("fcap: aborted by middleware or handler")
