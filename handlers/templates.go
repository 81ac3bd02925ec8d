package handlers

const tmplPage = `
{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Log Dashboard</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px;line-height:1.5}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:16px;align-items:center}
nav .brand{color:#f0f6fc;font-weight:700;font-size:15px}
nav .status{margin-left:auto;font-size:11px;color:#8b949e}
main{padding:16px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px 16px;min-width:120px}
.card .val{font-size:22px;font-weight:700;color:#f0f6fc}
.card .lbl{font-size:11px;color:#8b949e;margin-top:2px}
table{width:100%;border-collapse:collapse;font-size:12px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-weight:600;font-size:11px;text-transform:uppercase}
td{padding:5px 10px;border-bottom:1px solid #21262d;vertical-align:top}
.section{background:#161b22;border:1px solid #30363d;border-radius:6px;margin-bottom:16px;overflow:hidden}
.section-hdr{padding:8px 12px;border-bottom:1px solid #30363d;font-size:11px;font-weight:600;color:#8b949e;text-transform:uppercase;background:#0d1117}
.dim{color:#8b949e}
.ok{color:#56d364}
.warn{color:#f59e0b}
.err{color:#f87171}
.tl-row{display:flex;align-items:center;gap:8px;padding:3px 12px;font-size:11px}
.tl-label{min-width:100px}
.tl-bar-area{flex:1;height:14px}
.tl-bar{background:#1f6feb;border-radius:3px;height:14px;display:block}
.filters{display:flex;gap:8px;flex-wrap:wrap;align-items:center;margin-bottom:12px;background:#161b22;padding:8px 12px;border-radius:6px;border:1px solid #30363d}
.filters select,.filters input{background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:4px;padding:3px 6px;font-size:12px;font-family:inherit}
.filters button,.filters a{background:#1f6feb;border:none;color:#fff;padding:4px 12px;border-radius:4px;cursor:pointer;font-size:12px;text-decoration:none}
</style>
</head>
<body>
<nav>
  <span class="brand">Log Dashboard</span>
  <span class="status">{{if .Loading}}Loading...{{else}}updated {{fmtTime .FetchedAt}} (#{{.Generation}}){{end}}</span>
</nav>
<main>
<form class="filters" method="get" action="/">
  <input type="text" name="search" placeholder="Search logs..." value="{{.Criteria.SearchTerm}}">
  <select name="level">
    {{- range .Levels}}
    <option value="{{.Value}}"{{if eq .Value $.Criteria.Level}} selected{{end}}>{{.Label}}</option>
    {{- end}}
  </select>
  <select name="time_range">
    {{- range .TimeRanges}}
    <option value="{{.Value}}"{{if eq .Value $.Criteria.TimeRange}} selected{{end}}>{{.Label}}</option>
    {{- end}}
  </select>
  <button type="submit">Apply</button>
  <button type="button" id="refresh">Refresh</button>
  <a href="/api/export?search={{.Criteria.SearchTerm}}&level={{.Criteria.Level}}&time_range={{.Criteria.TimeRange}}">Export CSV</a>
</form>

<div class="cards">
  <div class="card"><div class="val">{{.Matched}}</div><div class="lbl">of {{.Total}} logs</div></div>
  <div class="card"><div class="val err">{{.Stats.Error}}</div><div class="lbl">Error</div></div>
  <div class="card"><div class="val warn">{{.Stats.Warning}}</div><div class="lbl">Warning</div></div>
  <div class="card"><div class="val ok">{{.Stats.Info}}</div><div class="lbl">Info</div></div>
  {{- range $level, $n := .Stats.Other}}
  <div class="card"><div class="val">{{$n}}</div><div class="lbl">{{$level}}</div></div>
  {{- end}}
</div>

<div class="section">
  <div class="section-hdr">Log Volume Over Time</div>
  {{- range .Timeline}}
  <div class="tl-row">
    <span class="tl-label">{{.Date}}</span>
    <span class="tl-bar-area"><span class="tl-bar" style="width:{{pct .Count $.MaxDaily}}%"></span></span>
    <span>{{.Count}}</span>
  </div>
  {{- else}}
  <div class="tl-row dim">No logs in range</div>
  {{- end}}
</div>

<div class="section">
  <div class="section-hdr">Recent Logs</div>
  <table>
    <tr><th>Timestamp</th><th>Level</th><th>Message</th></tr>
    {{- range .Recent}}
    <tr><td class="dim">{{.Timestamp}}</td><td class="{{levelClass .Level}}">{{.Level}}</td><td>{{.Message}}</td></tr>
    {{- end}}
  </table>
</div>
</main>
<script>
document.getElementById('refresh').addEventListener('click', function () {
  fetch('/api/refresh', {method: 'POST'}).then(function () { location.reload(); });
});
(function () {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/ws');
  ws.onmessage = function () { location.reload(); };
})();
</script>
</body>
</html>{{end}}
`
