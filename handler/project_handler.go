package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/mindmap-be/service"
	"github.com/tieubaoca/mindmap-be/types"
)

type ProjectHandler interface {
	HandleListProjects(c *gin.Context)
	HandleCreateProject(c *gin.Context)
	HandleGetProject(c *gin.Context)
	HandleUpdateProject(c *gin.Context)
	HandleDeleteProject(c *gin.Context)
	HandleExportProject(c *gin.Context)
}

type projectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) ProjectHandler {
	return &projectHandler{
		projectService: projectService,
	}
}

func (h *projectHandler) HandleListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, projects)
}

func (h *projectHandler) HandleCreateProject(c *gin.Context) {
	var req types.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid request body")
		return
	}
	project, err := h.projectService.CreateProject(c, req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusCreated, project)
}

func (h *projectHandler) HandleGetProject(c *gin.Context) {
	detail, err := h.projectService.GetProject(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, detail)
}

func (h *projectHandler) HandleUpdateProject(c *gin.Context) {
	var req types.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid request body")
		return
	}
	project, err := h.projectService.UpdateProject(c, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, project)
}

func (h *projectHandler) HandleDeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(c, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}

// HandleExportProject returns the full project as a downloadable JSON document.
func (h *projectHandler) HandleExportProject(c *gin.Context) {
	detail, err := h.projectService.GetProject(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=project_"+detail.ID+".json")
	c.JSON(http.StatusOK, detail)
}
