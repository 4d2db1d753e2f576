package pdf

import "html/template"

// invoiceTemplate is the fixed invoice layout. The status badge gets a
// distinct class when the invoice is paid.
var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1f2933; font-size: 13px; margin: 0; }
  .header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 28px; }
  .header img.logo { max-height: 72px; }
  .invoice-number { font-size: 22px; font-weight: bold; }
  .badge { display: inline-block; padding: 4px 12px; border-radius: 12px; font-size: 11px;
           text-transform: uppercase; background: #e4e7eb; color: #3e4c59; }
  .badge.paid { background: #d1f2d9; color: #1b7a36; }
  .parties { display: flex; justify-content: space-between; margin-bottom: 24px; }
  .parties h4 { margin: 0 0 6px; font-size: 11px; text-transform: uppercase; color: #7b8794; }
  table.items { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
  table.items th { text-align: left; font-size: 11px; text-transform: uppercase; color: #7b8794;
                   border-bottom: 2px solid #cbd2d9; padding: 6px 8px; }
  table.items td { padding: 8px; border-bottom: 1px solid #e4e7eb; }
  table.items td.num, table.items th.num { text-align: right; }
  .totals { width: 260px; margin-left: auto; }
  .totals div { display: flex; justify-content: space-between; padding: 4px 8px; }
  .totals .grand { font-weight: bold; border-top: 2px solid #cbd2d9; font-size: 15px; }
  .notes { margin-top: 28px; }
  .notes h4 { margin: 0 0 4px; font-size: 11px; text-transform: uppercase; color: #7b8794; }
  .signature { margin-top: 36px; }
  .signature img { max-height: 56px; }
</style>
</head>
<body>
  <div class="header">
    <div>
      {{if .LogoURL}}<img class="logo" src="{{.LogoURL}}" alt="logo">{{end}}
      <div>{{.BusinessName}}</div>
      <div>{{.BusinessAddress}}</div>
      <div>{{.BusinessPhone}}</div>
    </div>
    <div>
      <div class="invoice-number">Factura #{{.DisplayNumber}}</div>
      <span class="badge{{if eq .Status "paid"}} paid{{end}}">{{.Status}}</span>
      <div>Emitida: {{.IssueDate}}</div>
      {{if .DueDate}}<div>Vence: {{.DueDate}}</div>{{end}}
      {{if .PaidDate}}<div>Pagada: {{.PaidDate}}</div>{{end}}
    </div>
  </div>

  <div class="parties">
    <div>
      <h4>Facturar a</h4>
      <div>{{.ClientName}}</div>
      <div>{{.ClientAddress}}</div>
      <div>{{.ClientEmail}}</div>
      <div>{{.ClientPhone}}</div>
    </div>
  </div>

  <table class="items">
    <thead>
      <tr>
        <th>Descripción</th>
        <th>Categoría</th>
        <th class="num">Cantidad</th>
        <th class="num">Precio</th>
        <th class="num">Importe</th>
      </tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td>{{.Description}}</td>
        <td>{{.Category}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{.UnitPrice}}</td>
        <td class="num">{{.LineTotal}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals">
    <div><span>Subtotal</span><span>{{.Subtotal}}</span></div>
    <div><span>Impuestos</span><span>{{.Tax}}</span></div>
    <div class="grand"><span>Total</span><span>{{.Total}}</span></div>
    <div><span>Depósito</span><span>{{.Deposit}}</span></div>
    <div><span>Saldo pendiente</span><span>{{.RemainingBalance}}</span></div>
  </div>

  {{if .Note}}
  <div class="notes">
    <h4>Notas</h4>
    <div>{{.Note}}</div>
  </div>
  {{end}}

  {{if .Terms}}
  <div class="notes">
    <h4>Términos</h4>
    <div>{{.Terms}}</div>
  </div>
  {{end}}

  {{if .SignatureURL}}
  <div class="signature">
    <img src="{{.SignatureURL}}" alt="firma">
  </div>
  {{end}}
</body>
</html>`))
