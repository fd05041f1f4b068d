package sushiswap

import "fmt"

// poolResponse es la respuesta de GET /api/v0/{chainId}/{pool}.
// Solo se decodifican los campos que usa el ledger; los punteros permiten
// distinguir un campo ausente de un cero.
type poolResponse struct {
	Address    string       `json:"address"`
	FeeApr1d   *float64     `json:"feeApr1d"`
	Incentives *[]incentive `json:"incentives"`
}

type incentive struct {
	APR         *float64    `json:"apr"`
	RewardToken rewardToken `json:"rewardToken"`
}

type rewardToken struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol"`
}

func (p poolResponse) validate() error {
	if p.FeeApr1d == nil {
		return fmt.Errorf("missing field feeApr1d")
	}
	if p.Incentives == nil {
		return fmt.Errorf("missing field incentives")
	}
	for i, inc := range *p.Incentives {
		if inc.APR == nil {
			return fmt.Errorf("incentive %d: missing field apr", i)
		}
		if *inc.APR > 0 && (inc.RewardToken.Symbol == "" || inc.RewardToken.Address == "") {
			return fmt.Errorf("incentive %d: missing rewardToken symbol or address", i)
		}
	}
	return nil
}
