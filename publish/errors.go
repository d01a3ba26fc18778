package publish

import (
	"errors"
	"fmt"
)

// Terminal failures after retries are exhausted.
var (
	ErrUploadFailed  = errors.New("publish: upload failed")
	ErrPublishFailed = errors.New("publish: publish failed")
)

// Pipeline stages, in execution order.  A failed run names the stage it
// died in so the author knows whether local state or the network is to
// blame.
const (
	StageLoad      = "load"
	StageHash      = "hash"
	StageUpload    = "upload"
	StageResolve   = "resolve"
	StageRender    = "render"
	StagePublish   = "publish"
	StageReconcile = "reconcile"
)

// StageError tags an error with the pipeline stage it occurred in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("publish: %s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}
