package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/api/responses"
	"github.com/cargodesk/cargodesk-backend/api/validators"
	"github.com/cargodesk/cargodesk-backend/internal/archive"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
	"github.com/cargodesk/cargodesk-backend/pkg/types"
)

type createFolderRequest struct {
	Name     string     `json:"name" validate:"required"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
}

type updateFolderRequest struct {
	Name     *string             `json:"name,omitempty" validate:"omitempty,min=1"`
	ParentID *types.NullableUUID `json:"parentId,omitempty"`
}

type createMaterialRequest struct {
	Name    string `json:"name" validate:"required"`
	FileURL string `json:"fileUrl,omitempty"`
	Comment string `json:"comment,omitempty"`
}

type updateMaterialRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1"`
	FileURL *string `json:"fileUrl,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func ArchiveFolderCreate(svc archive.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createFolderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		folder, err := svc.CreateFolder(r.Context(), archive.CreateFolderInput{
			Name:        req.Name,
			ParentID:    req.ParentID,
			ActorUserID: actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, folder)
	}
}

func ArchiveFolderUpdate(svc archive.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "folderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateFolderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		folder, err := svc.UpdateFolder(r.Context(), archive.UpdateFolderInput{
			FolderID:    id,
			Name:        req.Name,
			ParentID:    req.ParentID,
			ActorUserID: actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, folder)
	}
}

func ArchiveFolderDelete(svc archive.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "folderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteFolder(r.Context(), archive.DeleteFolderInput{FolderID: id, ActorUserID: actor}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ArchiveBrowse returns one level of the archive tree. Without a folderId
// query parameter it lists the root folders.
func ArchiveBrowse(svc archive.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folderID, err := validators.ParseQueryUUID(r, "folderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		node, err := svc.Browse(r.Context(), folderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, node)
	}
}

func ArchiveMaterialCreate(svc archive.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		folderID, err := pathUUID(r, "folderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createMaterialRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		material, err := svc.CreateMaterial(r.Context(), archive.CreateMaterialInput{
			FolderID:    folderID,
			Name:        req.Name,
			FileURL:     req.FileURL,
			Comment:     req.Comment,
			ActorUserID: actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, material)
	}
}

func ArchiveMaterialUpdate(svc archive.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "materialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateMaterialRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		material, err := svc.UpdateMaterial(r.Context(), archive.UpdateMaterialInput{
			MaterialID:  id,
			Name:        req.Name,
			FileURL:     req.FileURL,
			Comment:     req.Comment,
			ActorUserID: actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, material)
	}
}

func ArchiveMaterialDelete(svc archive.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "materialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMaterial(r.Context(), archive.DeleteMaterialInput{MaterialID: id, ActorUserID: actor}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
