package handler

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/hirescreen/internal/api/response"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

type ResumeFileService interface {
	RegisterResumeFiles(ctx context.Context, actor recruit.Actor, in recruit.RegisterResumeFilesInput) ([]*models.ResumeFile, error)
	ListResumeFiles(ctx context.Context, q recruit.ResumeFileQuery) (recruit.ListResult[*models.ResumeFile], error)
	GetResumeFile(ctx context.Context, actor recruit.Actor, id string) (*models.ResumeFile, error)
	DeleteResumeFile(ctx context.Context, actor recruit.Actor, id string) error
}

type resumeFileDescriptor struct {
	OriginalFileName string  `json:"originalFileName" validate:"required,max=255"`
	MimeType         string  `json:"mimeType"         validate:"required"`
	SizeBytes        int64   `json:"sizeBytes"        validate:"gte=0"`
	FileHash         *string `json:"fileHash"`
	Storage          struct {
		Provider  string  `json:"provider"  validate:"required"`
		PathOrKey string  `json:"pathOrKey" validate:"required"`
		URL       *string `json:"url"`
		Bucket    *string `json:"bucket"`
	} `json:"storage"`
}

type registerResumeFilesRequest struct {
	JobID       string                 `json:"jobId"`
	CandidateID string                 `json:"candidateId"`
	Files       []resumeFileDescriptor `json:"files" validate:"required,min=1,max=50,dive"`
}

// NewRegisterResumeFilesHandler handles POST /api/v1/resume-files. The binaries
// are already in external storage; only their descriptors are registered.
func NewRegisterResumeFilesHandler(svc ResumeFileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerResumeFilesRequest
		if !decode(w, r, &req) {
			return
		}
		in := recruit.RegisterResumeFilesInput{
			JobID:       req.JobID,
			CandidateID: req.CandidateID,
			Files:       make([]recruit.ResumeFileDescriptor, 0, len(req.Files)),
		}
		for _, f := range req.Files {
			in.Files = append(in.Files, recruit.ResumeFileDescriptor{
				OriginalFileName: f.OriginalFileName,
				MimeType:         f.MimeType,
				SizeBytes:        f.SizeBytes,
				FileHash:         f.FileHash,
				Storage: models.FileStorage{
					Provider:  f.Storage.Provider,
					PathOrKey: f.Storage.PathOrKey,
					URL:       f.Storage.URL,
					Bucket:    f.Storage.Bucket,
				},
			})
		}

		files, err := svc.RegisterResumeFiles(r.Context(), actorFrom(r), in)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Created(w, "Upload resume files successfully", files)
	}
}

func NewListResumeFilesHandler(svc ResumeFileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := svc.ListResumeFiles(r.Context(), recruit.ResumeFileQuery{
			OrganizationID: actorFrom(r).OrganizationID,
			JobID:          q.Get("jobId"),
			CandidateID:    q.Get("candidateId"),
			UploadStatus:   q.Get("uploadStatus"),
			Page:           pageFrom(r),
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.List(w, "Get resume files successfully", res.Items, response.Page(res))
	}
}

func NewGetResumeFileHandler(svc ResumeFileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := svc.GetResumeFile(r.Context(), actorFrom(r), idParam(r))
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Get resume file detail successfully", f)
	}
}

func NewDeleteResumeFileHandler(svc ResumeFileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := idParam(r)
		if err := svc.DeleteResumeFile(r.Context(), actorFrom(r), id); err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, "Delete resume file successfully", deletedResponse{ID: id})
	}
}
