package storage

import (
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

func TestTranslateErrNoSuchKey(t *testing.T) {
	err := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	require.ErrorIs(t, translateErr(err), ErrObjectNotFound)
}

func TestTranslateErrNoSuchBucket(t *testing.T) {
	err := minio.ErrorResponse{Code: "NoSuchBucket", Message: "The specified bucket does not exist."}
	require.ErrorIs(t, translateErr(err), ErrObjectNotFound)
}

func TestTranslateErrPassesThroughOtherErrors(t *testing.T) {
	cause := errors.New("connection refused")
	require.Same(t, cause, translateErr(cause))

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	require.NotErrorIs(t, translateErr(denied), ErrObjectNotFound)
}
