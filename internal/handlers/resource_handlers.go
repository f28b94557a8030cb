package handlers

import (
	"net/http"
	"strconv"

	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/repository"
	"github.com/casaledger/casaledger-api/internal/services"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// @Summary List Customers
// @Description Get a paginated list of customers
// @Tags Customers
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	customers, total, err := h.customerService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, cust := range customers {
		responses = append(responses, cust.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"customers": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Customer
// @Description Get a customer by ID
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Success 200 {object} models.CustomerResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /customers/{customer_id} [get]
func (h *CustomerHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)
	customer, err := h.customerService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer.ToResponse()})
}

// @Summary Create Customer
// @Description Create a new customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body models.Customer true "Customer Data"
// @Success 201 {object} models.CustomerResponse
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var customer models.Customer
	if err := BindNestedOrFlat(c, "customer", &customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.customerService.Create(c.Request.Context(), &customer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"customer": customer.ToResponse()})
}

// @Summary Update Customer
// @Description Update an existing customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Param request body models.Customer true "Customer Data"
// @Success 200 {object} models.CustomerResponse
// @Security BearerAuth
// @Router /customers/{customer_id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)
	var customer models.Customer
	if err := BindNestedOrFlat(c, "customer", &customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer.ID = uint(id)

	if err := h.customerService.Update(c.Request.Context(), &customer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer.ToResponse()})
}

// @Summary Delete Customer
// @Description Delete a customer and all dependent records (Admin)
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /customers/{customer_id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)
	if err := h.customerService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cliente eliminado"})
}

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// @Summary List Employees
// @Description Get a paginated list of employees
// @Tags Employees
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /employees [get]
func (h *EmployeeHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	employees, total, err := h.employeeService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, e := range employees {
		responses = append(responses, e.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"employees": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Employee
// @Description Get an employee by ID
// @Tags Employees
// @Accept json
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Success 200 {object} models.EmployeeResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /employees/{employee_id} [get]
func (h *EmployeeHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("employee_id"), 10, 32)
	employee, err := h.employeeService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Empleado no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee.ToResponse()})
}

// @Summary Create Employee
// @Description Create a new employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param request body models.Employee true "Employee Data"
// @Success 201 {object} models.EmployeeResponse
// @Security BearerAuth
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var employee models.Employee
	if err := BindNestedOrFlat(c, "employee", &employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.employeeService.Create(c.Request.Context(), &employee); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"employee": employee.ToResponse()})
}

// @Summary Update Employee
// @Description Update an existing employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Param request body models.Employee true "Employee Data"
// @Success 200 {object} models.EmployeeResponse
// @Security BearerAuth
// @Router /employees/{employee_id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("employee_id"), 10, 32)
	var employee models.Employee
	if err := BindNestedOrFlat(c, "employee", &employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employee.ID = uint(id)

	if err := h.employeeService.Update(c.Request.Context(), &employee); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee.ToResponse()})
}

// @Summary Delete Employee
// @Description Delete an employee; their transactions keep a null employee link (Admin)
// @Tags Employees
// @Accept json
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /employees/{employee_id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("employee_id"), 10, 32)
	if err := h.employeeService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Empleado eliminado"})
}

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// @Summary List Projects
// @Description Get a paginated list of projects
// @Tags Projects
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by status"
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["status"] = c.Query("status")
	query.Filters["customer_id"] = c.Query("customer_id")

	projects, total, err := h.projectService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, p := range projects {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"projects": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Project
// @Description Get a project by ID, including its transactions
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.ProjectResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id} [get]
func (h *ProjectHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	project, err := h.projectService.FindByIDWithTransactions(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proyecto no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// @Summary Create Project
// @Description Create a new project; the remaining amount starts at the estimated total
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body models.Project true "Project Data"
// @Success 201 {object} models.ProjectResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var project models.Project
	if err := BindNestedOrFlat(c, "project", &project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectService.Create(c.Request.Context(), &project); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project.ToResponse()})
}

// @Summary Update Project
// @Description Update a project's descriptive fields. Financial fields are not writable here.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param request body models.Project true "Project Data"
// @Success 200 {object} models.ProjectResponse
// @Security BearerAuth
// @Router /projects/{project_id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	var project models.Project
	if err := BindNestedOrFlat(c, "project", &project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project.ID = uint(id)

	if err := h.projectService.Update(c.Request.Context(), &project); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// @Summary Delete Project
// @Description Delete a project and all dependent records (Admin)
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{project_id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	if err := h.projectService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Proyecto eliminado"})
}

// @Summary Activate Project
// @Description Move a project from prospect to active
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.ProjectResponse
// @Security BearerAuth
// @Router /projects/{project_id}/activate [post]
func (h *ProjectHandler) Activate(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	project, err := h.projectService.Activate(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// @Summary Complete Project
// @Description Mark an active project as completed
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.ProjectResponse
// @Security BearerAuth
// @Router /projects/{project_id}/complete [post]
func (h *ProjectHandler) Complete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	project, err := h.projectService.Complete(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// @Summary Cancel Project
// @Description Cancel a prospect or active project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.ProjectResponse
// @Security BearerAuth
// @Router /projects/{project_id}/cancel [post]
func (h *ProjectHandler) Cancel(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("project_id"), 10, 32)
	project, err := h.projectService.Cancel(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// @Summary List Activity Log
// @Description Get a paginated list of system activity entries, newest first
// @Tags Activity
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Param action query string false "Filter by action"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /activity [get]
func (h *ActivityHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "50"))
	query.Filters["action"] = c.Query("action")

	entries, total, err := h.activityService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries, "pagination": gin.H{"total": total}})
}
