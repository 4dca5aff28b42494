package argbind

import (
	"fmt"
	"strings"
	"time"

	"github.com/napalu/argbind/convert"
	"github.com/napalu/argbind/types/queue"
	"github.com/shopspring/decimal"
)

type TransType int

const (
	Repay TransType = iota + 1
	Loan
)

type Account struct {
	No   string
	Name string
}

type Trans struct {
	_       Cmd                `argbind:"names:trans;desc:account operations"`
	Name    string             `argbind:"names:-n|--name;desc:name"`
	Account Account            `argbind:"names:-A|--account;desc:account, format id@name;required:true;converter:account"`
	Type    TransType          `argbind:"names:-t|--type;desc:operation type, REPAY or LOAN;required:true"`
	Amount  decimal.Decimal    `argbind:"names:-a|--amount;desc:amount;required:true" pattern:"\\d+(\\.\\d{1,2})?" rule:"at most two decimals"`
	Orders  map[int64]struct{} `argbind:"names:-o|--orders;desc:order ids, comma separated"`
	Remark  map[int64]string   `argbind:"names:-r|--remark;desc:remarks, id=remark,..."`
	Ids     []int64            `argbind:"kind:vars;desc:id list"`
}

// TransPlain has the layout of Trans without tags, for NewSchema
type TransPlain struct {
	_       struct{}
	Name    string
	Account Account
	Type    TransType
	Amount  decimal.Decimal
	Orders  map[int64]struct{}
	Remark  map[int64]string
	Ids     []int64
}

type Login struct {
	_       Cmd           `argbind:"names:login|l"`
	User    string        `argbind:"names:-u|--user;required:true"`
	Verbose bool          `argbind:"names:-v|--verbose"`
	Retries int           `argbind:"names:--retries;default:3"`
	Timeout time.Duration `argbind:"default:30s"`
}

type Get struct {
	_   Cmd    `argbind:"names:get"`
	Key string `argbind:"kind:vars;desc:key"`
}

type Label struct {
	_      Cmd              `argbind:"names:label"`
	Count  int              `argbind:"names:-c;converter:upper"`
	Labels *queue.Q[string] `argbind:"kind:vars;converter:upper"`
}

const transHelp = "Usage: trans [-parameter value ...] [vars ...]\n" +
	"command: trans\n" +
	"description: account operations\n" +
	"parameter: -n|--name (optional), description: name\n" +
	"parameter: -A|--account (required), description: account, format id@name\n" +
	"parameter: -t|--type (required), description: operation type, REPAY or LOAN\n" +
	"parameter: -a|--amount (required), description: amount, input rule: at most two decimals\n" +
	"parameter: -o|--orders (optional), description: order ids, comma separated\n" +
	"parameter: -r|--remark (optional), description: remarks, id=remark,...\n" +
	"vars description: id list\n"

const transHelpZh = "使用方法：trans [参数 参数值] [变量...]\n" +
	"命令：trans\n" +
	"功能描述：account operations\n" +
	"参数：-n|--name（可选），参数说明：name\n" +
	"参数：-A|--account（必填），参数说明：account, format id@name\n" +
	"参数：-t|--type（必填），参数说明：operation type, REPAY or LOAN\n" +
	"参数：-a|--amount（必填），参数说明：amount，输入规则：at most two decimals\n" +
	"参数：-o|--orders（可选），参数说明：order ids, comma separated\n" +
	"参数：-r|--remark（可选），参数说明：remarks, id=remark,...\n" +
	"变量描述：id list\n"

func parseAccount(raw string) (any, error) {
	no, name, ok := strings.Cut(raw, "@")
	if !ok || no == "" || name == "" {
		return nil, fmt.Errorf("expected id@name, got %q", raw)
	}

	return Account{No: no, Name: name}, nil
}

func upper(raw string) (any, error) {
	return strings.ToUpper(raw), nil
}

func transOptions(extra ...ConfigureParserFunc) []ConfigureParserFunc {
	reg := convert.NewRegistry()
	convert.RegisterEnum(reg, map[string]TransType{"REPAY": Repay, "LOAN": Loan})

	return append([]ConfigureParserFunc{
		WithRegistry(reg),
		WithNamedConverter("account", parseAccount),
	}, extra...)
}
