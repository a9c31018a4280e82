package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/payment"
)

type errorSpec struct {
	status  int
	message string
}

var businessErrors = map[string]errorSpec{
	availability.CodeMalformedTime:            {http.StatusBadRequest, "Horário inválido."},
	availability.CodeInvalidDate:              {http.StatusBadRequest, "Data inválida."},
	availability.CodeInvalidWindow:            {http.StatusBadRequest, "O horário final deve ser depois do inicial."},
	availability.CodeInvalidSlotMinutes:       {http.StatusBadRequest, "Duração do horário fora do permitido."},
	availability.CodeCannotCloseDay:           {http.StatusConflict, "Não é possível fechar um dia com agendamentos."},
	availability.CodeAppointmentOutsideWindow: {http.StatusConflict, "Já existe agendamento fora do novo horário."},
	availability.CodeCannotBlockReservedSlot:  {http.StatusConflict, "Não é possível bloquear um horário reservado."},
	availability.CodeNotFound:                 {http.StatusNotFound, "Dia sem disponibilidade configurada."},

	appointment.CodeSlotUnavailable: {http.StatusConflict, "Horário indisponível."},
	appointment.CodePastDate:        {http.StatusBadRequest, "Não é possível agendar em data passada."},
	appointment.CodePersonRequired:  {http.StatusBadRequest, "Cliente obrigatório."},
	appointment.CodePersonNotFound:  {http.StatusNotFound, "Cliente não encontrado."},
	appointment.CodeInvalidStatus:   {http.StatusBadRequest, "Status inválido."},
	appointment.CodeInvalidState:    {http.StatusConflict, "Transição de status não permitida."},
	appointment.CodeNotFound:        {http.StatusNotFound, "Agendamento não encontrado."},
	appointment.CodeForbidden:       {http.StatusForbidden, "Ação não permitida."},

	payment.CodeNotFound:         {http.StatusNotFound, "Pagamento não encontrado."},
	payment.CodePaymentsDisabled: {http.StatusServiceUnavailable, "Pagamentos não configurados."},
}

// writeError renders err. Business errors keep their code and details,
// anything else is logged and hidden behind a generic 500.
func writeError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(logger.RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("request failed")
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	// A lost race looks the same as any other unavailable slot to the client.
	if be.Code == appointment.CodeSlotAlreadyTaken {
		be = httperr.BusinessError{Code: appointment.CodeSlotUnavailable}
	}

	mapped, known := businessErrors[be.Code]
	if !known {
		mapped = errorSpec{http.StatusBadRequest, "Requisição inválida."}
	}

	httperr.WriteDetails(c, mapped.status, be.Code, mapped.message, be.Details)
}

// writeBindError maps the clock and ymd tags onto the same codes the domain
// uses, so a bad time reads the same whether it failed binding or validation.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		value, _ := fe.Value().(string)

		switch fe.Tag() {
		case "clock":
			writeError(c, availability.ErrMalformedTime(fe.Field(), value))
			return
		case "ymd":
			writeError(c, availability.ErrInvalidDate(fe.Field(), value))
			return
		}

		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Dados inválidos.", map[string]any{
			"field": fe.Field(),
			"rule":  fe.Tag(),
		})
		return
	}

	httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
}
