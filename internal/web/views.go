package web

import (
	"net/http"

	"github.com/Azterny/Brawl-Track-sub000/internal/api"
	"github.com/Azterny/Brawl-Track-sub000/internal/chart"
	"github.com/Azterny/Brawl-Track-sub000/internal/router"
	"github.com/Azterny/Brawl-Track-sub000/internal/service"
	"github.com/Azterny/Brawl-Track-sub000/internal/session"

	"github.com/rs/zerolog"
)

func apiMessage(err error, fallback string) string {
	return api.UserMessage(err, fallback)
}

// handleView activates the one view the route table resolved.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request, match router.Match) {
	sess := session.FromContext(r.Context())
	st := &ViewState{
		Match:   match,
		Session: sess,
		User:    session.DisplayName(sess),
	}

	var (
		status int
		err    error
	)
	switch st.Match.View {
	case router.ViewPlayer:
		status, err = s.playerView(r, st)
	case router.ViewClub:
		status, err = s.clubView(r, st)
	case router.ViewDashboard:
		status, err = s.dashboardView(r, st)
	default:
		status, err = s.homeView(r, st)
	}

	if err != nil && service.IsUnauthorized(err) && session.Authenticated(sess) {
		zerolog.Ctx(r.Context()).Info().Msg("token rejected by API, signing out")
		s.signOut(w, r)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.render(w, r, status, st)
}

func (s *Server) homeView(r *http.Request, st *ViewState) (int, error) {
	st.Title = "Events"
	rotation := s.catalog.Rotation(r.Context())
	if !rotation.OK() {
		st.Error = "Unable to load the current events. Please try again later."
		return http.StatusBadGateway, rotation.Err
	}
	st.Home = &HomePage{Events: rotation.Value}
	return http.StatusOK, nil
}

func (s *Server) playerView(r *http.Request, st *ViewState) (int, error) {
	tag := router.NormalizeTag(st.Match.Tag)
	st.Title = tag

	window, err := chart.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		window = chart.AllTime
	}

	pv, err := s.players.LoadPlayer(r.Context(), tag, st.Session.Token)
	if err != nil {
		return s.primaryFailure(st, err, "Player not found.", "Unable to load this player. Please try again later.")
	}

	st.Title = pv.Profile.Name
	st.Player = st.renderPlayer(pv, window, s.now())
	return http.StatusOK, nil
}

func (s *Server) clubView(r *http.Request, st *ViewState) (int, error) {
	tag := router.NormalizeTag(st.Match.Tag)
	st.Title = tag

	club, err := s.clubs.LoadClub(r.Context(), tag, st.Session.Token)
	if err != nil {
		return s.primaryFailure(st, err, "Club not found.", "Unable to load this club. Please try again later.")
	}

	st.Title = club.Name
	st.Club = &ClubPage{Club: *club, Members: sortedMembers(club)}
	return http.StatusOK, nil
}

func (s *Server) dashboardView(r *http.Request, st *ViewState) (int, error) {
	st.Title = "My stats"

	window, err := chart.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		window = chart.AllTime
	}

	d, err := s.accounts.LoadDashboard(r.Context(), st.Session.Token)
	if err != nil {
		return s.primaryFailure(st, err, "Linked player not found.", "Unable to load your stats. Please try again later.")
	}

	page := &DashboardPage{Account: d.Account}
	if page.Account.Username == "" {
		page.Account.Username = st.User
	}
	if d.Player != nil {
		page.Player = st.renderPlayer(d.Player, window, s.now())
	}
	st.Dashboard = page
	return http.StatusOK, nil
}

// primaryFailure aborts the view with a message. Not-found errors show the
// API's own message when it has one.
func (s *Server) primaryFailure(st *ViewState, err error, notFound, generic string) (int, error) {
	if service.IsNotFound(err) {
		st.Error = apiMessage(err, notFound)
		return http.StatusNotFound, err
	}
	st.Error = generic
	return http.StatusBadGateway, err
}
