package service

import (
	"github.com/gdp/rpg-companion/internal/config"
	"github.com/gdp/rpg-companion/internal/mail"
	"github.com/gdp/rpg-companion/internal/repository"
)

type Services struct {
	Auth   *AuthService
	Roster *RosterService
	Notes  *NotesService
	Dice   *DiceService
}

func NewServices(repos *repository.Repositories, mailer mail.Mailer, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos, mailer, cfg),
		Roster: NewRosterService(repos.Character),
		Notes:  NewNotesService(repos.Note),
		Dice:   NewDiceService(repos.DiceRoll),
	}
}
