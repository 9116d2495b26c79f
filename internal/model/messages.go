package model

// Client facing messages. Clients match on these strings, so they are kept
// exactly as published.
const (
	MsgMissingFields         = "Por favor, complete todos los campos."
	MsgCustomerMissingFields = "Faltan campos obligatorios."

	MsgPetRegistered = "Mascota registrada con éxito."
	MsgPetFailed     = "Error al registrar la mascota."

	MsgReservationRegistered = "Reserva registrada con éxito."
	MsgReservationFailed     = "Error al registrar la reserva."

	MsgCardRegistered = "Tarjeta registrada con éxito."
	MsgCardFailed     = "Error al registrar la tarjeta."

	MsgCustomerRegistered     = "Cliente registrado con éxito. Verificación enviada al correo."
	MsgCustomerLookupFailed   = "Error al verificar el cliente."
	MsgCustomerExists         = "Cliente ya registrado."
	MsgCustomerFailed         = "Error al registrar cliente."
	MsgSecurityAnswersFailed  = "Error al guardar validación."
	MsgTokenFailed            = "Error al generar token de verificación."
	MsgVerificationMailFailed = "Error al enviar el correo de verificación."
)
