// Package service wires the admission gate, policy store and record store
// behind the operations the transport layer calls.
package service

import (
	"github.com/sirupsen/logrus"

	"github.com/akashkanabur/AIAgentEvaluation/internal/admission"
	"github.com/akashkanabur/AIAgentEvaluation/internal/policy"
	store "github.com/akashkanabur/AIAgentEvaluation/internal/repository"
)

type Service struct {
	store    store.Store
	policies *policy.Store
	gate     *admission.Gate
	log      *logrus.Logger
}

func New(st store.Store, policies *policy.Store, gate *admission.Gate, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		store:    st,
		policies: policies,
		gate:     gate,
		log:      log,
	}
}
