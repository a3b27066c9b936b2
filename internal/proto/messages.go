package proto

// Field numbers below mirror amail.proto.

type PingRequest struct{}

func (m *PingRequest) Marshal() []byte { return nil }

func (m *PingRequest) Unmarshal(b []byte) error {
	return walk(b, func(field) error { return nil })
}

type PingResponse struct {
	Status string
}

func (m *PingResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Status)
	return b
}

func (m *PingResponse) Unmarshal(b []byte) error {
	*m = PingResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Status, err = f.str()
		}
		return err
	})
}

type RegisterAccountRequest struct {
	Name     string
	Salt     []byte
	Verifier []byte
}

func (m *RegisterAccountRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendBlob(b, 2, m.Salt)
	b = appendBlob(b, 3, m.Verifier)
	return b
}

func (m *RegisterAccountRequest) Unmarshal(b []byte) error {
	*m = RegisterAccountRequest{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Name, err = f.str()
		case 2:
			m.Salt, err = f.blob()
		case 3:
			m.Verifier, err = f.blob()
		}
		return err
	})
}

type RegisterAccountResponse struct {
	Name    string
	Balance int64
}

func (m *RegisterAccountResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendInt64(b, 2, m.Balance)
	return b
}

func (m *RegisterAccountResponse) Unmarshal(b []byte) error {
	*m = RegisterAccountResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Name, err = f.str()
		case 2:
			m.Balance, err = f.integer()
		}
		return err
	})
}

type GetSaltRequest struct {
	Name string
}

func (m *GetSaltRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	return b
}

func (m *GetSaltRequest) Unmarshal(b []byte) error {
	*m = GetSaltRequest{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Name, err = f.str()
		}
		return err
	})
}

type GetSaltResponse struct {
	Salt []byte
}

func (m *GetSaltResponse) Marshal() []byte {
	var b []byte
	b = appendBlob(b, 1, m.Salt)
	return b
}

func (m *GetSaltResponse) Unmarshal(b []byte) error {
	*m = GetSaltResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Salt, err = f.blob()
		}
		return err
	})
}

type LoginRequest struct {
	Name              string
	VerifierCandidate []byte
}

func (m *LoginRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendBlob(b, 2, m.VerifierCandidate)
	return b
}

func (m *LoginRequest) Unmarshal(b []byte) error {
	*m = LoginRequest{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Name, err = f.str()
		case 2:
			m.VerifierCandidate, err = f.blob()
		}
		return err
	})
}

type LoginResponse struct {
	AccessToken  string
	RefreshToken string
}

func (m *LoginResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.AccessToken)
	b = appendString(b, 2, m.RefreshToken)
	return b
}

func (m *LoginResponse) Unmarshal(b []byte) error {
	*m = LoginResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.AccessToken, err = f.str()
		case 2:
			m.RefreshToken, err = f.str()
		}
		return err
	})
}

type RefreshTokenRequest struct {
	RefreshToken string
}

func (m *RefreshTokenRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.RefreshToken)
	return b
}

func (m *RefreshTokenRequest) Unmarshal(b []byte) error {
	*m = RefreshTokenRequest{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.RefreshToken, err = f.str()
		}
		return err
	})
}

type RefreshTokenResponse struct {
	AccessToken  string
	RefreshToken string
}

func (m *RefreshTokenResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.AccessToken)
	b = appendString(b, 2, m.RefreshToken)
	return b
}

func (m *RefreshTokenResponse) Unmarshal(b []byte) error {
	*m = RefreshTokenResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.AccessToken, err = f.str()
		case 2:
			m.RefreshToken, err = f.str()
		}
		return err
	})
}

type SendMailRequest struct {
	To     string
	MailId string
	Phrase string
}

func (m *SendMailRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.To)
	b = appendString(b, 2, m.MailId)
	b = appendString(b, 3, m.Phrase)
	return b
}

func (m *SendMailRequest) Unmarshal(b []byte) error {
	*m = SendMailRequest{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.To, err = f.str()
		case 2:
			m.MailId, err = f.str()
		case 3:
			m.Phrase, err = f.str()
		}
		return err
	})
}

type SendMailResponse struct {
	Ok bool
}

func (m *SendMailResponse) Marshal() []byte {
	var b []byte
	b = appendBool(b, 1, m.Ok)
	return b
}

func (m *SendMailResponse) Unmarshal(b []byte) error {
	*m = SendMailResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Ok, err = f.boolean()
		}
		return err
	})
}

type GetSentMailRequest struct{}

func (m *GetSentMailRequest) Marshal() []byte { return nil }

func (m *GetSentMailRequest) Unmarshal(b []byte) error {
	return walk(b, func(field) error { return nil })
}

type GetReceivedMailRequest struct{}

func (m *GetReceivedMailRequest) Marshal() []byte { return nil }

func (m *GetReceivedMailRequest) Unmarshal(b []byte) error {
	return walk(b, func(field) error { return nil })
}

type MailIDsResponse struct {
	MailIds []string
}

func (m *MailIDsResponse) Marshal() []byte {
	var b []byte
	b = appendStrings(b, 1, m.MailIds)
	return b
}

func (m *MailIDsResponse) Unmarshal(b []byte) error {
	*m = MailIDsResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			var s string
			if s, err = f.str(); err == nil {
				m.MailIds = append(m.MailIds, s)
			}
		}
		return err
	})
}

type GetMaskAndClassifierRequest struct {
	MailId string
}

func (m *GetMaskAndClassifierRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.MailId)
	return b
}

func (m *GetMaskAndClassifierRequest) Unmarshal(b []byte) error {
	*m = GetMaskAndClassifierRequest{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.MailId, err = f.str()
		}
		return err
	})
}

type GetMaskAndClassifierResponse struct {
	Mask       string
	Classifier []uint32
}

func (m *GetMaskAndClassifierResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Mask)
	b = appendPackedUint32s(b, 2, m.Classifier)
	return b
}

func (m *GetMaskAndClassifierResponse) Unmarshal(b []byte) error {
	*m = GetMaskAndClassifierResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Mask, err = f.str()
		case 2:
			var vs []uint32
			if vs, err = f.uint32s(); err == nil {
				m.Classifier = append(m.Classifier, vs...)
			}
		}
		return err
	})
}

type AddContactRequest struct {
	Account string
}

func (m *AddContactRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Account)
	return b
}

func (m *AddContactRequest) Unmarshal(b []byte) error {
	*m = AddContactRequest{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Account, err = f.str()
		}
		return err
	})
}

type AddContactResponse struct {
	Ok bool
}

func (m *AddContactResponse) Marshal() []byte {
	var b []byte
	b = appendBool(b, 1, m.Ok)
	return b
}

func (m *AddContactResponse) Unmarshal(b []byte) error {
	*m = AddContactResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Ok, err = f.boolean()
		}
		return err
	})
}

type GetContactsRequest struct{}

func (m *GetContactsRequest) Marshal() []byte { return nil }

func (m *GetContactsRequest) Unmarshal(b []byte) error {
	return walk(b, func(field) error { return nil })
}

type GetContactsResponse struct {
	Accounts []string
}

func (m *GetContactsResponse) Marshal() []byte {
	var b []byte
	b = appendStrings(b, 1, m.Accounts)
	return b
}

func (m *GetContactsResponse) Unmarshal(b []byte) error {
	*m = GetContactsResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			var s string
			if s, err = f.str(); err == nil {
				m.Accounts = append(m.Accounts, s)
			}
		}
		return err
	})
}

type TipRequest struct {
	Contact string
	Amount  int64
	Value   int64
}

func (m *TipRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Contact)
	b = appendInt64(b, 2, m.Amount)
	b = appendInt64(b, 3, m.Value)
	return b
}

func (m *TipRequest) Unmarshal(b []byte) error {
	*m = TipRequest{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Contact, err = f.str()
		case 2:
			m.Amount, err = f.integer()
		case 3:
			m.Value, err = f.integer()
		}
		return err
	})
}

type TipResponse struct {
	Ok bool
}

func (m *TipResponse) Marshal() []byte {
	var b []byte
	b = appendBool(b, 1, m.Ok)
	return b
}

func (m *TipResponse) Unmarshal(b []byte) error {
	*m = TipResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Ok, err = f.boolean()
		}
		return err
	})
}

type GetBalanceRequest struct{}

func (m *GetBalanceRequest) Marshal() []byte { return nil }

func (m *GetBalanceRequest) Unmarshal(b []byte) error {
	return walk(b, func(field) error { return nil })
}

type GetBalanceResponse struct {
	Amount int64
}

func (m *GetBalanceResponse) Marshal() []byte {
	var b []byte
	b = appendInt64(b, 1, m.Amount)
	return b
}

func (m *GetBalanceResponse) Unmarshal(b []byte) error {
	*m = GetBalanceResponse{}
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Amount, err = f.integer()
		}
		return err
	})
}
