package archive

import (
	"bytes"
	"context"
	"fmt"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/exceptions"
	"homecare-service/internal/pkg/intake"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectPutter is the part of *minio.Client the archive uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioArchive struct {
	Client     ObjectPutter
	BucketName string
	Log        *zap.Logger
	now        func() time.Time
}

func NewMinioArchive(client ObjectPutter, bucketName string, logger *zap.Logger) contracts.SubmissionArchive {
	return &minioArchive{
		Client:     client,
		BucketName: bucketName,
		Log:        logger,
		now:        time.Now,
	}
}

// Archive writes the document as JSON under assessments/<date>/<draft id>.json and returns
// the object name.
func (a *minioArchive) Archive(ctx context.Context, draftID string, document *intake.SubmissionDocument) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(document)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := ObjectName(a.now(), draftID)
	_, err = a.Client.PutObject(ctx, a.BucketName, objectName, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationJSON,
	})
	if err != nil {
		a.Log.Error("minioArchive.Archive error calling PutObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, a.BucketName),
			zap.String(constvars.LoggingObjectKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, a.BucketName)
	}

	a.Log.Info("minioArchive.Archive stored submission",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, a.BucketName),
		zap.String(constvars.LoggingObjectKey, objectName),
	)
	return objectName, nil
}

func ObjectName(at time.Time, draftID string) string {
	return fmt.Sprintf(constvars.ArchiveObjectPathFormat, at.UTC().Format("2006-01-02"), draftID)
}
