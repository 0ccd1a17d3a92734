package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

func (s *Server) registerBackendRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/usuario/login", s.login)
	api.POST("/usuario/", s.register)

	venues := api.Group("/escenario")
	{
		venues.GET("", s.listVenues)
		venues.POST("/", s.createVenue)
		venues.GET("/usuario/:id", s.listVenuesByOwner)
		venues.GET("/:id", s.getVenue)
		venues.PUT("/:id", s.updateVenue)
		venues.DELETE("/:id", s.deleteVenue)
		venues.POST("/:id/imagen", s.createVenueImage)
	}

	api.POST("/reserva", s.createReservation)
	api.GET("/reserva/usuario/:id", s.listReservationsByUser)

	api.POST("/reportar", s.createReport)
	api.GET("/reportar/escenario/:id", s.listReportsByVenue)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) login(c *gin.Context) {
	var creds sportzone.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) && u.password == creds.Password {
			c.JSON(http.StatusOK, u.User)
			return
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Credenciales inválidas"})
}

func (s *Server) register(c *gin.Context) {
	var reg sportzone.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		badRequest(c, err)
		return
	}
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Faltan campos obligatorios"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, reg.Email) {
			c.JSON(http.StatusConflict, gin.H{"message": "El correo ya está registrado"})
			return
		}
	}
	u := sportzone.User{
		ID:    s.allocID("user"),
		Email: reg.Email,
		Name:  reg.Name,
		Phone: reg.Phone,
		Role:  reg.RoleID,
	}
	s.users[u.ID] = &storedUser{User: u, password: reg.Password}
	c.JSON(http.StatusCreated, u)
}

func (s *Server) listVenues(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.sortedVenues(func(*sportzone.Venue) bool { return true }))
}

func (s *Server) listVenuesByOwner(c *gin.Context) {
	owner, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.sortedVenues(func(v *sportzone.Venue) bool { return v.OwnerID == owner }))
}

func (s *Server) getVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, found := s.venues[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Escenario no encontrado"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func venueFromInput(id int, in sportzone.VenueInput) *sportzone.Venue {
	return &sportzone.Venue{
		ID:          id,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Address:     in.Address,
		Latitude:    sportzone.Decimal(in.Latitude),
		Longitude:   sportzone.Decimal(in.Longitude),
		Price:       sportzone.Decimal(in.Price),
		Capacity:    in.Capacity,
		StatusID:    in.StatusID,
		OwnerID:     in.OwnerID,
		ImageURL:    in.ImageURL,
	}
}

func (s *Server) createVenue(c *gin.Context) {
	var in sportzone.VenueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v := venueFromInput(s.allocID("venue"), in)
	s.venues[v.ID] = v
	c.JSON(http.StatusCreated, v)
}

func (s *Server) updateVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in sportzone.VenueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, found := s.venues[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Escenario no encontrado"})
		return
	}
	v := venueFromInput(id, in)
	v.Images = existing.Images
	if v.ImageURL == "" {
		v.ImageURL = existing.ImageURL
	}
	s.venues[id] = v
	c.JSON(http.StatusOK, v)
}

func (s *Server) deleteVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.venues[id]; !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Escenario no encontrado"})
		return
	}
	delete(s.venues, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) createVenueImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in sportzone.VenueImageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	in.VenueID = id
	if err := in.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, found := s.venues[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Escenario no encontrado"})
		return
	}
	img := sportzone.VenueImage{
		ID:          s.allocID("image"),
		VenueID:     id,
		URL:         in.URL,
		Description: in.Description,
		Order:       in.Order,
	}
	v.Images = append(v.Images, img)
	sort.SliceStable(v.Images, func(i, j int) bool { return v.Images[i].Order < v.Images[j].Order })
	c.JSON(http.StatusCreated, img)
}

func parseClock(s string) (time.Time, bool) {
	t, err := time.Parse("15:04", s)
	return t, err == nil
}

func (s *Server) createReservation(c *gin.Context) {
	var in sportzone.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	start, okStart := parseClock(in.Start)
	end, okEnd := parseClock(in.End)
	if _, err := time.Parse("2006-01-02", in.Date); err != nil || !okStart || !okEnd || !end.After(start) {
		c.JSON(http.StatusBadRequest, sportzone.ReservationResult{Success: false, Message: "Datos de reserva inválidos"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, found := s.venues[in.VenueID]
	if !found {
		c.JSON(http.StatusNotFound, sportzone.ReservationResult{Success: false, Message: "Escenario no encontrado"})
		return
	}
	for _, r := range s.reservations {
		if r.VenueID != in.VenueID || r.Date != in.Date {
			continue
		}
		rs, _ := parseClock(r.Start)
		re, _ := parseClock(r.End)
		if start.Before(re) && rs.Before(end) {
			c.JSON(http.StatusOK, sportzone.ReservationResult{
				Success: false,
				Message: "El escenario ya está reservado en ese horario",
			})
			return
		}
	}

	res := sportzone.Reservation{
		ID:       s.allocID("reservation"),
		UserID:   in.UserID,
		VenueID:  in.VenueID,
		Date:     in.Date,
		Start:    in.Start,
		End:      in.End,
		StatusID: in.StatusID,
		Status:   &sportzone.StatusRef{ID: in.StatusID, Name: statusName(in.StatusID)},
		Venue: &sportzone.VenueSummary{
			ID:      v.ID,
			Name:    v.Name,
			Type:    v.Type,
			Address: v.Address,
			Price:   v.Price,
			Images:  append([]sportzone.VenueImage(nil), v.Images...),
		},
	}
	if u, ok := s.users[in.UserID]; ok {
		res.User = &sportzone.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	s.reservations = append(s.reservations, res)
	c.JSON(http.StatusCreated, sportzone.ReservationResult{Success: true, Data: &res, Message: "Reserva creada"})
}

func statusName(id int) string {
	if id == sportzone.ReservationStatusPending {
		return "Pendiente"
	}
	return "Estado " + strconv.Itoa(id)
}

func (s *Server) listReservationsByUser(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []sportzone.Reservation{}
	for _, r := range s.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createReport(c *gin.Context) {
	var in sportzone.ReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, found := s.venues[in.VenueID]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Escenario no encontrado"})
		return
	}
	report := sportzone.Report{
		ID:          s.allocID("report"),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		ReportedAt:  time.Now().UTC().Format(time.RFC3339),
		Venue:       &sportzone.VenueSummary{ID: v.ID, Name: v.Name},
	}
	if u, ok := s.users[in.UserID]; ok {
		report.User = &sportzone.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	} else {
		report.User = &sportzone.UserSummary{ID: in.UserID}
	}
	s.reports = append(s.reports, report)
	c.JSON(http.StatusCreated, report)
}

func (s *Server) listReportsByVenue(c *gin.Context) {
	venueID, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []sportzone.Report{}
	for _, r := range s.reports {
		if r.Venue != nil && r.Venue.ID == venueID {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}
